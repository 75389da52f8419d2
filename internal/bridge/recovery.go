package bridge

import (
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/wippyai/asr-runtime/outbuf"
)

// logPanic records a panic that was stopped at the boundary.
func logPanic(name string, v any) {
	log.Error("panic in exported function",
		zap.String("func", name),
		zap.Any("panic", v),
		zap.ByteString("stack", debug.Stack()))
}

// safeCall runs fn and swallows any panic so it never unwinds into the host.
func safeCall(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logPanic(name, r)
		}
	}()
	fn()
}

// safeCallResult runs fn and returns fallback if it panics.
func safeCallResult[T any](name string, fallback T, fn func() T) (result T) {
	defer func() {
		if r := recover(); r != nil {
			logPanic(name, r)
			result = fallback
		}
	}()
	return fn()
}

// safeCallString is safeCallResult for functions returning a buffer string.
// On panic the thread's buffer is cleared so get_buf_len reports 0.
func safeCallString[T any](name string, fn func() *T) (result *T) {
	defer func() {
		if r := recover(); r != nil {
			logPanic(name, r)
			outbuf.Clear()
			result = nil
		}
	}()
	return fn()
}
