package logging

import (
	"context"
	"log"
	"runtime"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger zap.Logger
var cfg zap.Config

func init() {
	cfg = zap.Config{
		Encoding:         "json",
		Level:            zap.NewAtomicLevelAt(zapcore.Level(0)),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "message",

			LevelKey:    "level",
			EncodeLevel: zapcore.CapitalLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.ISO8601TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
	}

	aLogger, err := cfg.Build()

	if err != nil {
		log.Fatalf("FATAL ERROR: Failed to build zap logger: %s", err.Error())
	}

	logger = *aLogger
}

// Logger returns a zap logger carrying every field accumulated on the context
func Logger(ctx context.Context) zap.Logger {
	newLogger := logger
	newLogger = *newLogger.With(FieldsSlice(ctx)...)
	return newLogger
}

// SetLevel adjusts the minimum level emitted by all loggers
func SetLevel(level int) {
	cfg.Level.SetLevel(zapcore.Level(level))
}

// GetFuncName returns the name of the calling function for scope fields
func GetFuncName() string {
	pc := make([]uintptr, 2)
	n := runtime.Callers(1, pc)
	frames := runtime.CallersFrames(pc[:n])
	frame, _ := frames.Next()
	frame, _ = frames.Next()

	flds := strings.Split(frame.Function, ".")
	if len(flds) >= 2 {
		return flds[len(flds)-2] + "." + flds[len(flds)-1]
	}

	return frame.Function
}
