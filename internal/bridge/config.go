package bridge

import (
	"os"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/asr-runtime/asr"
	"github.com/wippyai/asr-runtime/session"
)

// Environment variables read once, on the first call into the library.
const (
	envLogLevel         = "ASR_LOG_LEVEL"
	envMemoryLimitPages = "ASR_MEMORY_LIMIT_PAGES"
)

type config struct {
	logLevel         string
	memoryLimitPages uint32
}

func loadConfig(getenv func(string) string) config {
	cfg := config{logLevel: getenv(envLogLevel)}
	if v := getenv(envMemoryLimitPages); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			cfg.memoryLimitPages = uint32(n)
		}
	}
	return cfg
}

// newLogger builds a stderr logger at level, or a no-op logger when level
// is empty.
func newLogger(level string) (*zap.Logger, error) {
	if level == "" {
		return zap.NewNop(), nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.DisableStacktrace = true
	return zc.Build(zap.WithCaller(false))
}

var (
	setupOnce sync.Once
	log       = zap.NewNop()
	engineCfg = &asr.Config{}
)

// setup applies the environment configuration. Every export calls it.
func setup() {
	setupOnce.Do(func() {
		cfg := loadConfig(os.Getenv)
		l, err := newLogger(cfg.logLevel)
		if err != nil {
			l, _ = newLogger("warn")
			l.Warn("invalid log level, using warn", zap.String("value", cfg.logLevel), zap.Error(err))
		}
		log = l.Named("asr")
		asr.SetLogger(log.Named("engine"))
		session.SetLogger(log.Named("session"))
		engineCfg = &asr.Config{
			MemoryLimitPages: cfg.memoryLimitPages,
			Logger:           log.Named("engine"),
		}
		log.Debug("library initialized", zap.Uint32("memory_limit_pages", cfg.memoryLimitPages))
	})
}
