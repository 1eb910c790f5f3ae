package logger

import (
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	envLevel  = "MARKET_LOGGING_LEVEL"
	envFormat = "MARKET_LOGGING_FORMAT"

	defaultLevel = logrus.WarnLevel
	module       = "market"
)

var (
	lg   *logrus.Entry
	once sync.Once
)

// Logger returns the logger for the sdk
func Logger() *logrus.Entry {
	once.Do(func() {
		lg = New(os.Getenv(envLevel), os.Getenv(envFormat))
	})
	return lg
}

// New builds a logger writing to stderr. An unknown level falls back to warning,
// an unknown format falls back to json.
func New(levelStr, formatStr string) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = defaultLevel
	}
	l.SetLevel(level)
	l.SetFormatter(formatter(formatStr))

	return l.WithField("module", module)
}

func formatter(formatStr string) logrus.Formatter {
	switch strings.ToLower(formatStr) {
	case "text":
		return &logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05.000 MST"}
	default:
		return &logrus.JSONFormatter{}
	}
}
