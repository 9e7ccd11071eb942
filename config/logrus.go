package config

import (
	"os"
	"strings"

	"github.com/shuchit-srx/stoory-backend-sub003/config/common"
	"github.com/sirupsen/logrus"
)

func NewLogger(cfg *common.Config) *logrus.Logger {
	levelName, format := cfg.GetLogConfig()

	log := logrus.New()
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if strings.EqualFold(format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05.000"})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05.000"})
	}
	return log
}
