package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/KirkDiggler/tabletop-engine/internal/logging"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     logging.Config
		enabled zapcore.Level
		muted   zapcore.Level
	}{
		{name: "default is info", cfg: logging.Config{}, enabled: zapcore.InfoLevel, muted: zapcore.DebugLevel},
		{name: "debug development", cfg: logging.Config{Level: "debug", Development: true}, enabled: zapcore.DebugLevel, muted: zapcore.DebugLevel - 1},
		{name: "warn production", cfg: logging.Config{Level: "warn"}, enabled: zapcore.WarnLevel, muted: zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := logging.New(tt.cfg)
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.enabled))
			assert.False(t, logger.Core().Enabled(tt.muted))
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := logging.New(logging.Config{Level: "loud"})
	assert.Error(t, err)
}
