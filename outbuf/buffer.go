// Package outbuf implements the reusable output buffer used to return
// variable-length strings across the foreign boundary.
//
// A string produced for the host lives in the calling thread's buffer until
// the next write on that thread. The host reads the pointer, asks for the
// length, and copies the bytes out before its next call. No deallocation
// callback is needed because the buffer is recycled on every write.
package outbuf

import "unsafe"

// Storage is memory that stays addressable by the host after the Go call
// that filled it returns.
type Storage interface {
	// Store copies p into the storage, growing it if needed, and returns the
	// address of the first byte.
	Store(p []byte) unsafe.Pointer
	// Free releases the memory. The storage may be reused afterwards.
	Free()
}

// Buffer holds the most recently emitted string for one thread.
type Buffer struct {
	mem     Storage
	scratch []byte
	n       int
}

// New returns a Buffer backed by mem. A nil mem selects the default storage
// for the build (C heap with cgo, Go heap without).
func New(mem Storage) *Buffer {
	if mem == nil {
		mem = newDefaultStorage()
	}
	return &Buffer{mem: mem}
}

// Emit clears the buffer, lets produce append bytes to dst, terminates the
// result with a zero byte and returns the address of the stored copy. The
// address is valid until the next Emit, Reset or Free on b.
func (b *Buffer) Emit(produce func(dst []byte) []byte) unsafe.Pointer {
	out := produce(b.scratch[:0])
	b.n = len(out)
	out = append(out, 0)
	b.scratch = out
	return b.mem.Store(out)
}

// EmitString emits s.
func (b *Buffer) EmitString(s string) unsafe.Pointer {
	return b.Emit(func(dst []byte) []byte {
		return append(dst, s...)
	})
}

// Len returns the length of the last emitted string, excluding the
// terminator. It is 0 before the first Emit.
func (b *Buffer) Len() int {
	return b.n
}

// Reset forgets the last string so Len reports 0. The storage is kept.
func (b *Buffer) Reset() {
	b.n = 0
	b.scratch = b.scratch[:0]
}

// Free releases the storage. b may be used again afterwards.
func (b *Buffer) Free() {
	b.Reset()
	b.mem.Free()
}
