package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates the service logger. Development gets a human-readable console
// writer; anything else logs JSON to stdout.
func New(environment string) *zerolog.Logger {
	var logger zerolog.Logger

	if environment == "" || environment == "development" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		logger = zerolog.New(output).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	return &logger
}
