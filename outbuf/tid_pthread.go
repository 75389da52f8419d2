//go:build !linux && !windows && cgo

package outbuf

/*
#include <pthread.h>
#include <stdint.h>

static uint64_t outbuf_thread_id(void) {
	return (uint64_t)(uintptr_t)pthread_self();
}
*/
import "C"

func threadID() uint64 {
	return uint64(C.outbuf_thread_id())
}

const threadScoped = true
