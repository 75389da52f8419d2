package asr

import (
	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"
)

// Config holds configuration for script instantiation.
type Config struct {
	// MemoryLimitPages sets the maximum script memory in pages (64KB each).
	// 0 means the wazero default (65536 pages = 4GB).
	// 256 = 16MB, 1024 = 64MB
	MemoryLimitPages uint32

	// Logger receives script messages and engine diagnostics.
	// nil means the package Logger.
	Logger *zap.Logger

	// CompilationCache shares compiled code between runtimes loading the
	// same script. nil disables caching.
	CompilationCache wazero.CompilationCache
}

func (c *Config) logger() *zap.Logger {
	if c == nil || c.Logger == nil {
		return Logger()
	}
	return c.Logger
}

func (c *Config) runtimeConfig() wazero.RuntimeConfig {
	rc := wazero.NewRuntimeConfig().WithCloseOnContextDone(true)
	if c == nil {
		return rc
	}
	if c.MemoryLimitPages > 0 {
		rc = rc.WithMemoryLimitPages(c.MemoryLimitPages)
	}
	if c.CompilationCache != nil {
		rc = rc.WithCompilationCache(c.CompilationCache)
	}
	return rc
}
