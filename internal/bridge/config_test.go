package bridge

import (
	"runtime"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/wippyai/asr-runtime/outbuf"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		wantLevel string
		wantPages uint32
	}{
		{"empty", nil, "", 0},
		{"level", map[string]string{envLogLevel: "debug"}, "debug", 0},
		{"pages", map[string]string{envMemoryLimitPages: "256"}, "", 256},
		{"bad pages ignored", map[string]string{envMemoryLimitPages: "lots"}, "", 0},
		{"pages overflow ignored", map[string]string{envMemoryLimitPages: "4294967296"}, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadConfig(func(k string) string { return tt.env[k] })
			if cfg.logLevel != tt.wantLevel {
				t.Errorf("logLevel = %q, want %q", cfg.logLevel, tt.wantLevel)
			}
			if cfg.memoryLimitPages != tt.wantPages {
				t.Errorf("memoryLimitPages = %d, want %d", cfg.memoryLimitPages, tt.wantPages)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger("")
	if err != nil {
		t.Fatal(err)
	}
	if l.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("empty level should give a no-op logger")
	}

	l, err = newLogger("info")
	if err != nil {
		t.Fatal(err)
	}
	if !l.Core().Enabled(zapcore.InfoLevel) || l.Core().Enabled(zapcore.DebugLevel) {
		t.Error("info logger has the wrong level")
	}

	if _, err := newLogger("chatty"); err == nil {
		t.Error("unknown level should fail")
	}
}

func TestSafeCall(t *testing.T) {
	safeCall("test", func() { panic("boom") })

	got := safeCallResult("test", 7, func() int { panic("boom") })
	if got != 7 {
		t.Errorf("safeCallResult = %d, want fallback 7", got)
	}
	if got := safeCallResult("test", 7, func() int { return 3 }); got != 3 {
		t.Errorf("safeCallResult = %d, want 3", got)
	}
}

func TestSafeCallString_ClearsBuffer(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer outbuf.ReleaseCurrent()

	outbuf.EmitString("stale")
	p := safeCallString("test", func() *byte {
		panic("boom")
	})
	if p != nil {
		t.Error("panic should yield nil")
	}
	if outbuf.Len() != 0 {
		t.Errorf("buffer length = %d after panic, want 0", outbuf.Len())
	}
}
