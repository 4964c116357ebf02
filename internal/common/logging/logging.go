package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global zerolog logger. Dev mode writes for humans,
// anything else writes JSON lines.
func Setup(mode, level string) {
	SetupWriter(os.Stderr, mode, level)
}

// SetupWriter is Setup with an explicit destination
func SetupWriter(w io.Writer, mode, level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if mode == "dev" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	}

	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}
