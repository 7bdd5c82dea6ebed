package tossup

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func logFields(s *Simulator, keysAndValues ...interface{}) []interface{} {
	return append([]interface{}{
		zap.String("election", s.election.Name),
		zap.Array("parties", partyArray(s.election.Parties)),
		zap.Int("regions", s.election.Model.Len()),
		zap.Int("votes_at_stake", s.election.Model.TotalWeight()),
		zap.Int("workers", s.opts.workers),
		zap.Int64("seed", s.opts.seed),
	}, keysAndValues...)
}

// NewLogger builds a console logger that writes entries below the error level
// to stdout and the rest to stderr.
func NewLogger(logLevel zapcore.Level) *zap.SugaredLogger {
	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel && lvl >= logLevel
	})
	lowPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl < zapcore.ErrorLevel && lvl >= logLevel
	})

	consoleStdout := zapcore.Lock(os.Stdout)
	consoleStderr := zapcore.Lock(os.Stderr)

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderConfig.CallerKey = "caller"

	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)

	core := zapcore.NewTee(
		zapcore.NewCore(consoleEncoder, consoleStdout, lowPriority),
		zapcore.NewCore(consoleEncoder, consoleStderr, highPriority),
	)

	return zap.New(core, zap.AddCaller()).Sugar()
}
