package asr

import (
	"unicode/utf8"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/asr-runtime/errors"
)

// readBytes returns a copy of guest memory [ptr, ptr+n). A range outside
// memory panics with an *errors.Error, which wazero turns into a trap.
func readBytes(mod api.Module, fn string, ptr, n uint32) []byte {
	if n == 0 {
		return nil
	}
	mem := mod.Memory()
	if mem == nil {
		panic(errors.MemoryOutOfBounds(fn, ptr, n))
	}
	data, ok := mem.Read(ptr, n)
	if !ok {
		panic(errors.MemoryOutOfBounds(fn, ptr, n))
	}
	out := make([]byte, n)
	copy(out, data)
	return out
}

// readString reads a UTF-8 string from guest memory.
func readString(mod api.Module, fn string, ptr, n uint32) string {
	data := readBytes(mod, fn, ptr, n)
	if !utf8.Valid(data) {
		panic(errors.InvalidUTF8(errors.PhaseHost, fn, data))
	}
	return string(data)
}

// writeString copies s into the guest buffer at bufPtr whose capacity is
// stored at lenPtr. The length of s is always stored back at lenPtr. It
// reports false when the buffer is too small.
func writeString(mod api.Module, fn string, bufPtr, lenPtr uint32, s string) bool {
	mem := mod.Memory()
	if mem == nil {
		panic(errors.MemoryOutOfBounds(fn, lenPtr, 4))
	}
	capacity, ok := mem.ReadUint32Le(lenPtr)
	if !ok {
		panic(errors.MemoryOutOfBounds(fn, lenPtr, 4))
	}
	if !mem.WriteUint32Le(lenPtr, uint32(len(s))) {
		panic(errors.MemoryOutOfBounds(fn, lenPtr, 4))
	}
	if uint32(len(s)) > capacity {
		return false
	}
	if !mem.WriteString(bufPtr, s) {
		panic(errors.MemoryOutOfBounds(fn, bufPtr, uint32(len(s))))
	}
	return true
}
