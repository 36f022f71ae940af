package obslog

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel_ShouldMapKnownNames(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("info"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel("error"))
}

func TestParseLevel_ShouldBeCaseInsensitive(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("DEBUG"))
}

func TestParseLevel_ShouldDefaultToInfo_ForUnknownLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, parseLevel("nonsense"))
}

func TestSetup_ShouldInstallGlobalLevel(t *testing.T) {
	Setup("error")
	defer Setup("info")

	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())
}

func TestDefault_ShouldReturnInfoLevelLogger(t *testing.T) {
	Default()
	defer Setup("info")

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
