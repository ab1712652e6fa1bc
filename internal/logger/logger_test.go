package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	log := New(Config{Level: "debug", Format: "console", Development: true})
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log = New(Config{Level: "warn", Format: "json"})
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	log := New(Config{Level: "loud"})
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
}
