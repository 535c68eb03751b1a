package logger

import (
	"ftm-analyzer/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"io"
	"os"
	"strings"
	"time"
)

// NewLogger installs the global logger. Logs go to stderr so that stdout
// carries only the analysis summary.
func NewLogger(cfg config.LoggerConfig) zerolog.Logger {
	return NewLoggerWithOutput(cfg, os.Stderr)
}

func NewLoggerWithOutput(cfg config.LoggerConfig, out io.Writer) zerolog.Logger {
	level := ParseLevel(cfg.Level)

	if cfg.Format == "console" {
		output := zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    false,
		}
		log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
	}

	return log.Logger
}

func ParseLevel(raw string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}
