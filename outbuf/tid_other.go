//go:build !linux && !windows && !cgo

package outbuf

// threadScoped reports whether buffers are separated per OS thread.
const threadScoped = false

// Without cgo there is no foreign caller, so one shared buffer suffices.
func threadID() uint64 {
	return 0
}
