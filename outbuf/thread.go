package outbuf

import (
	"sync"
	"unsafe"
)

// Buffers are keyed by OS thread. A foreign thread calling into Go stays
// locked to its goroutine for the duration of the call, so the thread id is
// stable between an Emit and the host's following length query.
var (
	threadMu      sync.Mutex
	threadBuffers = make(map[uint64]*Buffer)
)

// Current returns the calling thread's buffer, creating it on first use.
func Current() *Buffer {
	tid := threadID()

	threadMu.Lock()
	defer threadMu.Unlock()

	b, ok := threadBuffers[tid]
	if !ok {
		b = New(nil)
		threadBuffers[tid] = b
	}
	return b
}

// Emit writes to the calling thread's buffer. See Buffer.Emit.
func Emit(produce func(dst []byte) []byte) unsafe.Pointer {
	return Current().Emit(produce)
}

// EmitString writes s to the calling thread's buffer.
func EmitString(s string) unsafe.Pointer {
	return Current().EmitString(s)
}

// Len returns the length of the calling thread's last string, or 0 if the
// thread never emitted one.
func Len() int {
	tid := threadID()

	threadMu.Lock()
	b, ok := threadBuffers[tid]
	threadMu.Unlock()

	if !ok {
		return 0
	}
	return b.Len()
}

// Clear resets the calling thread's buffer so Len reports 0.
func Clear() {
	tid := threadID()

	threadMu.Lock()
	b, ok := threadBuffers[tid]
	threadMu.Unlock()

	if ok {
		b.Reset()
	}
}

// ReleaseCurrent frees the calling thread's buffer. Hosts call it before a
// thread that used the boundary exits.
func ReleaseCurrent() {
	tid := threadID()

	threadMu.Lock()
	b, ok := threadBuffers[tid]
	delete(threadBuffers, tid)
	threadMu.Unlock()

	if ok {
		b.Free()
	}
}

// Threads returns the number of threads holding a buffer.
func Threads() int {
	threadMu.Lock()
	defer threadMu.Unlock()
	return len(threadBuffers)
}
