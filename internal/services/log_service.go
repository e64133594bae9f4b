package services

import (
	"MysteryBox/internal/config"
	"fmt"
	"github.com/sirupsen/logrus"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type LogService struct {
	Log *logrus.Logger
}

func NewLogService(configuration *config.Configuration) LogService {
	log := logrus.New()
	logConfig := configuration.Server.LogConfig
	setLogOutput(logConfig, log)
	setLogLevel(logConfig, log)
	setLogFormatter(logConfig, log)
	return LogService{Log: log}
}

// NewDiscardLogService is used where log output is irrelevant, mostly tests.
func NewDiscardLogService() LogService {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return LogService{Log: log}
}

func setLogFormatter(logConfig config.LogConfig, log *logrus.Logger) {
	switch logConfig.Format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	case "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

func setLogLevel(logConfig config.LogConfig, log *logrus.Logger) {
	level, err := logrus.ParseLevel(strings.ToLower(logConfig.Level))
	if err != nil {
		log.WithField("level", logConfig.Level).Warn("unknown log level, keeping info")
		return
	}
	log.SetLevel(level)
}

func setLogOutput(logConfig config.LogConfig, log *logrus.Logger) {
	switch logConfig.Output {
	case "stdout":
		log.SetOutput(os.Stdout)
	case "file":
		if logConfig.LogPath == "" {
			log.Error("file output requires logPath to be set, logging to stderr")
			return
		}
		logName := fmt.Sprintf("mysterybox-%s.log", time.Now().Format("2006-01-02"))
		logPath := filepath.Join(strings.TrimRight(logConfig.LogPath, "/"), logName)
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			log.Fatal(err)
		}
		log.SetOutput(file)
	}
}
