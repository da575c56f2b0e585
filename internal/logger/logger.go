// Package logger provides a wrapper around logrus for structured logging.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a configured logger instance. Output is JSON unless the
// process runs in a development environment, where colored text is easier to
// scan alongside the ingestion output.
func NewLogger(logLevel string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
		log.Warnf("Invalid log level '%s', defaulting to info", logLevel)
	}
	log.SetLevel(level)
	log.SetFormatter(formatterForEnvironment(os.Getenv("ENVIRONMENT")))

	return log
}

func formatterForEnvironment(environment string) logrus.Formatter {
	if strings.EqualFold(environment, "development") {
		return &logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		}
	}
	return &logrus.JSONFormatter{}
}
