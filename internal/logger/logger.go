package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Setup configures the process-wide logrus logger. With json set, entries
// come out as JSON lines; filePath, when non-empty, mirrors output to a file
// next to stderr.
func Setup(level logrus.Level, json bool, filePath string) {
	if json {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	logrus.SetLevel(level)

	if filePath == "" {
		logrus.SetOutput(os.Stderr)
		return
	}
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		logrus.SetOutput(os.Stderr)
		logrus.WithError(err).Error("could not open log file")
		return
	}
	logrus.SetOutput(io.MultiWriter(os.Stderr, file))
}

// LevelFromVerbosity maps repeated -v flags to a logrus level.
func LevelFromVerbosity(verbosity int) logrus.Level {
	switch {
	case verbosity <= 0:
		return logrus.WarnLevel
	case verbosity == 1:
		return logrus.InfoLevel
	default:
		return logrus.DebugLevel
	}
}
