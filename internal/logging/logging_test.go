package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestConfig_Levels(t *testing.T) {
	assert.Equal(t, zapcore.InfoLevel, Config(false).Level.Level())
	assert.Equal(t, zapcore.DebugLevel, Config(true).Level.Level())
	assert.Equal(t, []string{"stderr"}, Config(false).OutputPaths)
}

func TestNew(t *testing.T) {
	logger, err := New("test", true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	quiet, err := New("test", false)
	require.NoError(t, err)
	assert.False(t, quiet.Core().Enabled(zapcore.DebugLevel))
}
