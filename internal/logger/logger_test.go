package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Development(t *testing.T) {
	log, err := New(Options{Development: true})
	require.NoError(t, err)
	require.NotNil(t, log)

	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
	log.Info("test message")
}

func TestNew_Production(t *testing.T) {
	log, err := New(Options{})
	require.NoError(t, err)
	require.NotNil(t, log)

	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
}

func TestNew_Level(t *testing.T) {
	log, err := New(Options{Level: "warn"})
	require.NoError(t, err)

	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestMust(t *testing.T) {
	assert.NotPanics(t, func() {
		Must(Options{Development: true})
	})
	assert.Panics(t, func() {
		Must(Options{Level: "loud"})
	})
}
