package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refradar/refradar/internal/logger"
)

func TestNew(t *testing.T) {
	log, err := logger.New(logger.Config{Level: "debug", Development: true})
	require.NoError(t, err)
	require.NotNil(t, log)

	// Must not panic through the full interface.
	log.Debug("debug message", logger.String("key", "value"))
	log.Info("info message", logger.Int("count", 3))
	log.Warn("warn message", logger.Bool("flag", true))
	log.Error("error message", logger.Float64("score", 0.8))

	child := log.With(logger.String("component", "test"))
	require.NotNil(t, child)
	child.Info("child message")
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	log, err := logger.New(logger.Config{Level: "verbose"})
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestNewNop(t *testing.T) {
	log := logger.NewNop()
	log.Info("discarded")
	assert.NoError(t, log.Sync())
	assert.NotNil(t, log.With(logger.String("key", "value")))
}
