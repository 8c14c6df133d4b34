// Package logging builds the zap logger used by aicss commands.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// New returns a console logger. Info and warnings go to stdout, errors to
// stderr. verbose enables debug output.
func New(verbose, noColor bool) *zap.Logger {
	minLevel := zapcore.InfoLevel
	if verbose {
		minLevel = zapcore.DebugLevel
	}

	lowPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return minLevel <= lvl && lvl < zapcore.ErrorLevel
	})
	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(consoleEncoder(os.Stdout, noColor), zapcore.Lock(os.Stdout), lowPriority),
		zapcore.NewCore(consoleEncoder(os.Stderr, noColor), zapcore.Lock(os.Stderr), highPriority),
	)
	return zap.New(core).Named("aicss")
}

func consoleEncoder(stream *os.File, noColor bool) zapcore.Encoder {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if colorEnabled(stream, noColor) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return zapcore.NewConsoleEncoder(ec)
}

func colorEnabled(stream *os.File, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(stream.Fd()))
}
