// Package logging builds the process-wide logrus logger.
package logging

import "github.com/sirupsen/logrus"

// New returns a logger configured for the environment: JSON output in
// production, human-readable text elsewhere.
func New(env string) *logrus.Logger {
	logger := logrus.New()
	if env == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	logger.SetLevel(logrus.InfoLevel)
	return logger
}
