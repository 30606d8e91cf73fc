package logs

import (
	"log/slog"
	"testing"

	"rater/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogConfig(level string, pretty bool) *config.Config {
	cfg := &config.Config{}
	cfg.Env.Env = "test"
	cfg.Env.ServiceName = "rater"
	cfg.Env.Log.Level = level
	cfg.Env.Log.Pretty = pretty

	return cfg
}

func TestNew(t *testing.T) {
	logger, err := New(Params{Config: newLogConfig("debug", true)})

	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.True(t, logger.Enabled(nil, slog.LevelDebug))
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New(Params{Config: newLogConfig("verbose", false)})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{level: "debug", want: slog.LevelDebug},
		{level: "info", want: slog.LevelInfo},
		{level: "WARN", want: slog.LevelWarn},
		{level: "error", want: slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			got, err := parseLogLevel(tt.level)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
