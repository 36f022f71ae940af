package persona

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrator_Migrate_ShouldSeedDefaultSkill_ForPreOneOneZeroProfile(t *testing.T) {
	p := &Profile{ID: "a", Version: "1.0.0", Skills: []Skill{}}
	m := NewMigrator()

	err := m.Migrate(p)

	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, p.Version)
	require.Len(t, p.Skills, 1)
	assert.Equal(t, "basic_combat", p.Skills[0].Name)
	assert.True(t, p.Verify())
}

func TestMigrator_Migrate_ShouldNotSeedSkill_WhenSkillsAlreadyPresent(t *testing.T) {
	p := &Profile{ID: "a", Version: "1.0.0", Skills: []Skill{{Name: "sniping", Level: 2}}}
	m := NewMigrator()

	err := m.Migrate(p)

	require.NoError(t, err)
	assert.Len(t, p.Skills, 1)
	assert.Equal(t, "sniping", p.Skills[0].Name)
}

func TestMigrator_Migrate_ShouldBeNoop_WhenAlreadyAtCurrentVersion(t *testing.T) {
	p := NewDefault("a")
	originalSig := p.Signature

	err := NewMigrator().Migrate(p)

	require.NoError(t, err)
	assert.Equal(t, originalSig, p.Signature)
}

func TestMigrator_Migrate_ShouldError_OnMalformedVersion(t *testing.T) {
	p := &Profile{ID: "a", Version: "garbage"}

	err := NewMigrator().Migrate(p)

	assert.Error(t, err)
}

func TestMigrator_Register_ShouldAppendAdditionalMigration(t *testing.T) {
	p := &Profile{ID: "a", Version: "1.0.0", Skills: []Skill{}}
	m := NewMigrator()
	applied := false
	m.Register(Migration{
		Name:    "mark_applied",
		Applies: func(_ *Profile) bool { return true },
		Apply:   func(_ *Profile) { applied = true },
	})

	err := m.Migrate(p)

	require.NoError(t, err)
	assert.True(t, applied)
}

func TestMigrator_Migrate_ShouldNotDowngrade_NewerProfile(t *testing.T) {
	p := &Profile{ID: "a", Version: "9.9.9"}

	err := NewMigrator().Migrate(p)

	require.NoError(t, err)
	assert.Equal(t, "9.9.9", p.Version)
}
