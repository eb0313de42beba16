package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

var (
	InfoLogger  *logrus.Logger
	ErrorLogger *logrus.Logger
)

// InitLogger wires the two process loggers: info to stdout, errors to stderr.
func InitLogger() {
	InfoLogger = logrus.New()
	InfoLogger.SetOutput(os.Stdout)
	InfoLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	InfoLogger.SetLevel(logrus.InfoLevel)

	ErrorLogger = logrus.New()
	ErrorLogger.SetOutput(os.Stderr)
	ErrorLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	ErrorLogger.SetLevel(logrus.ErrorLevel)
}
