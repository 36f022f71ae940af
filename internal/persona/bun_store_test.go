package persona

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfileModel_ShouldCopyIdentityFieldsAndMarshalPayload(t *testing.T) {
	p := NewDefault("companion-1")

	model, err := newProfileModel(p)

	require.NoError(t, err)
	assert.Equal(t, "companion-1", model.ID)
	assert.Equal(t, CurrentVersion, model.Version)
	assert.Equal(t, p.Signature, model.Signature)
	assert.NotEmpty(t, model.Payload)
}

func TestProfileModel_ToDomain_ShouldRoundTripThroughPayload(t *testing.T) {
	p := NewDefault("companion-1")
	p.Facts = append(p.Facts, Fact{Key: "k", Value: "v", Timestamp: 42})
	require.NoError(t, p.Sign())
	model, err := newProfileModel(p)
	require.NoError(t, err)

	back, err := model.toDomain()

	require.NoError(t, err)
	assert.Equal(t, p.ID, back.ID)
	assert.Equal(t, p.Facts, back.Facts)
	assert.True(t, back.Verify())
}
