package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New creates a new structured logger with the specified debug level and format.
// Diagnostics go to stderr so they never interleave with journal lines on stdout.
func New(debug bool, format string) *logrus.Logger {
	logger := logrus.New()

	logger.SetOutput(os.Stderr)
	if strings.EqualFold(format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	if debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return logger
}

// Quiet returns a logger that only reports errors, for tests and embedding.
func Quiet() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}
