package support

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const ServiceName = "person-listener"

func NewLogger(settings Settings) *zerolog.Logger {
	return newLogger(os.Stdout, settings.LogLevel)
}

func newLogger(w io.Writer, level string) *zerolog.Logger {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}

	logger := zerolog.New(w).Level(parsed).With().Timestamp().Str("service", ServiceName).Logger()
	return &logger
}
