package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Log struct {
	LogLevel zapcore.Level `yaml:"level" envconfig:"LOG_LEVEL"`
	Sink     string        `yaml:"sink" envconfig:"LOG_SINK"`
}

// NewLogger builds a JSON zap logger writing to Sink (stdout when empty).
// A sink that cannot be opened is reported and replaced by stdout.
func NewLogger(cfg Log, name string) *zap.Logger {
	return newLogger(cfg, name, zapcore.Lock(os.Stdout))
}

func newLogger(cfg Log, name string, fallback zapcore.WriteSyncer) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	ws := fallback
	var sinkErr error
	if cfg.Sink != "" {
		sink, _, err := zap.Open(cfg.Sink)
		if err != nil {
			sinkErr = err
		} else {
			ws = sink
		}
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), ws, zap.NewAtomicLevelAt(cfg.LogLevel))

	log := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).Named(name)
	if sinkErr != nil {
		log.Warn("open log sink; writing to stdout", zap.String("sink", cfg.Sink), zap.Error(sinkErr))
	}
	return log
}
