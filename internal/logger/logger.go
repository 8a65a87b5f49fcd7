package logger

import (
	"io"
	"os"
	"time"

	"github.com/natefinch/lumberjack"
	logrus "github.com/sirupsen/logrus"
)

// Options configures the process logger.
type Options struct {
	File    string
	Level   string
	Console bool // also write to stdout
}

// Setup configures the standard logrus logger to write to a rotating file and
// returns the writer so the HTTP access log can share it.
func Setup(opts Options) io.Writer {
	// Lumberjack for file rotation
	rotator := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    10, // megabytes
		MaxBackups: 7,
		MaxAge:     7, // days
		Compress:   true,
	}

	var out io.Writer = rotator
	if opts.Console {
		out = io.MultiWriter(os.Stdout, rotator)
	}

	logrus.SetOutput(out)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
		logrus.Warnf("unknown log level %q, using info", opts.Level)
	}
	logrus.SetLevel(level)

	return out
}

// Logger returns the configured standard logger.
func Logger() *logrus.Logger {
	return logrus.StandardLogger()
}
