package persona

import "github.com/aisimcore/simcore/internal/domain/simerr"

// Migration applies an in-place upgrade to a profile. Applies reports
// whether this migration is relevant to p's current state; Apply
// performs the upgrade and is only called when Applies returned true.
type Migration struct {
	Name    string
	Applies func(p *Profile) bool
	Apply   func(p *Profile)
}

// Migrator runs the registered migrations in order.
type Migrator struct {
	migrations []Migration
}

// NewMigrator creates a Migrator with the default migration set: a
// "pre-1.1.0, empty skills" migration that seeds a default skill for
// profiles that predate the skills field.
func NewMigrator() *Migrator {
	return &Migrator{
		migrations: []Migration{
			{
				Name: "seed_default_skill_pre_1_1_0",
				Applies: func(p *Profile) bool {
					major, minor, _, ok := parseSemver(p.Version)
					if !ok {
						return false
					}
					return (major == 0 || (major == 1 && minor < 1)) && len(p.Skills) == 0
				},
				Apply: func(p *Profile) {
					p.Skills = append(p.Skills, Skill{Name: "basic_combat", Level: 1, Notes: "seeded by migration"})
				},
			},
		},
	}
}

// Register appends an additional migration to the end of the chain.
func (m *Migrator) Register(mig Migration) {
	m.migrations = append(m.migrations, mig)
}

// Migrate applies every registered, applicable migration in order and
// advances p.Version to CurrentVersion, then recomputes the
// signature. A no-op if p is already at or beyond CurrentVersion —
// migrations never downgrade a newer profile.
func (m *Migrator) Migrate(p *Profile) error {
	cmp, ok := compareSemver(p.Version, CurrentVersion)
	if !ok {
		return simerr.New(simerr.CodeMigrationFailed, "malformed profile version: "+p.Version)
	}
	if cmp >= 0 {
		return nil
	}

	for _, mig := range m.migrations {
		if mig.Applies(p) {
			mig.Apply(p)
		}
	}

	p.Version = CurrentVersion
	return p.Sign()
}

// compareSemver returns -1/0/1 comparing a to b by (major, minor,
// patch), or ok=false if either fails to parse.
func compareSemver(a, b string) (int, bool) {
	aMajor, aMinor, aPatch, ok := parseSemver(a)
	if !ok {
		return 0, false
	}
	bMajor, bMinor, bPatch, ok := parseSemver(b)
	if !ok {
		return 0, false
	}

	switch {
	case aMajor != bMajor:
		return sign(aMajor - bMajor), true
	case aMinor != bMinor:
		return sign(aMinor - bMinor), true
	default:
		return sign(aPatch - bPatch), true
	}
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
