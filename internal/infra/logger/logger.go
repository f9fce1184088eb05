package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the service logger. JSON output is used outside dev so audit
// pipelines can parse the request log.
func New(env string) *logrus.Logger {
	log := logrus.New()
	log.Out = os.Stdout

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if env == "dev" {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			PadLevelText:  true,
		})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	return log
}
