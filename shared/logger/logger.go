package logger

import (
	"hostmaster/config"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const formatJSON = "json"

// InitLogger installs a trace-level console logger so bootstrapping can log before config is read.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	log.Trace().Msg("Zerolog initialized.")
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel applies SERVER_LOG_LEVEL and SERVER_LOG_FORMAT and tags every entry with the app name.
func SetLogLevel(config *config.Config) {
	Configure(config, os.Stdout)
}

func Configure(config *config.Config, out io.Writer) {
	if config.Server.LogFormat != formatJSON {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).With().Timestamp()
	if config.App.Name != "" {
		ctx = ctx.Str("app", config.App.Name)
	}

	log.Logger = ctx.Logger()

	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil || config.Server.LogLevel == "" {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
		log.Trace().Str("loglevel", zerolog.TraceLevel.String()).Msg("Environment has no log level set up, using default.")

		return
	}

	zerolog.SetGlobalLevel(level)
	log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
}
