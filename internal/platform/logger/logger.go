package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var base *zap.SugaredLogger

func init() {
	l, err := zap.NewProduction(zap.AddCallerSkip(1))
	if err != nil {
		l = zap.NewNop()
	}
	base = l.Sugar()
}

// Init rebuilds the package logger. format "console" switches to the
// development encoder, anything else keeps JSON.
func Init(level, format string) error {
	var cfg zap.Config
	if strings.EqualFold(format, "console") {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	base = l.Sugar()
	return nil
}

// Sync flushes buffered entries. Call it with defer in main().
func Sync() {
	_ = base.Sync()
}

func Info(msg string, keysAndValues ...interface{}) {
	base.Infow(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...interface{}) {
	base.Warnw(msg, keysAndValues...)
}

func Error(msg string, err error, keysAndValues ...interface{}) {
	if err != nil {
		keysAndValues = append(keysAndValues, "error", err)
	}
	base.Errorw(msg, keysAndValues...)
}

// Fatal logs and exits the process.
func Fatal(msg string, err error, keysAndValues ...interface{}) {
	Error(msg, err, keysAndValues...)
	Sync()
	os.Exit(1)
}
