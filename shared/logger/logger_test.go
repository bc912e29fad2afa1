package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"hostmaster/config"
	"hostmaster/shared/logger"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T) {
	t.Helper()

	original := log.Logger
	level := zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
	})
}

func TestInitLogger(t *testing.T) {
	restore(t)

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestConfigure_Level(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected zerolog.Level
	}{
		{name: "debug", level: "debug", expected: zerolog.DebugLevel},
		{name: "info", level: "info", expected: zerolog.InfoLevel},
		{name: "warn", level: "warn", expected: zerolog.WarnLevel},
		{name: "disabled", level: "disabled", expected: zerolog.Disabled},
		{name: "invalid falls back to trace", level: "verbose", expected: zerolog.TraceLevel},
		{name: "empty falls back to trace", level: "", expected: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restore(t)

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.level

			logger.Configure(cfg, &bytes.Buffer{})

			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}

func TestConfigure_JSONCarriesAppName(t *testing.T) {
	restore(t)

	cfg := &config.Config{}
	cfg.Server.LogLevel = "info"
	cfg.Server.LogFormat = "json"
	cfg.App.Name = "hostmaster"

	var buf bytes.Buffer
	logger.Configure(cfg, &buf)

	log.Info().Str("reservation", "42").Msg("reservation confirmed")

	entry := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "hostmaster", entry["app"])
	assert.Equal(t, "42", entry["reservation"])
	assert.Equal(t, "reservation confirmed", entry["message"])
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	logger.ErrorWithStack(errors.New("overlap query failed"))

	assert.Contains(t, buf.String(), "overlap query failed")
	assert.Contains(t, buf.String(), `"level":"error"`)
}
