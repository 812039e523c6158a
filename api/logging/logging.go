package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

const serviceName = "diary-server"

// global accessible logger
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// Tests and tools that never call Init still get a usable logger.
func init() {
	Init("info", false)
}

// Init rebuilds the shared logger. Production logs are JSON; development logs
// are text for readability.
func Init(level string, production bool) {
	logger = logrus.New()
	logger.SetOutput(os.Stderr)

	if production {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)

	Log = logger.WithFields(logrus.Fields{
		"service":        serviceName,
		"is_development": !production,
	})
}

func Level() logrus.Level {
	return logger.GetLevel()
}
