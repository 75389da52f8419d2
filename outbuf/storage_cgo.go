//go:build cgo

package outbuf

/*
#include <stdlib.h>
#include <string.h>
*/
import "C"

import "unsafe"

// cStorage keeps the bytes on the C heap, where the host may read them after
// the call returns.
type cStorage struct {
	p   unsafe.Pointer
	cap int
}

func newDefaultStorage() Storage {
	return &cStorage{}
}

func (s *cStorage) Store(data []byte) unsafe.Pointer {
	if len(data) > s.cap {
		newCap := max(len(data), 2*s.cap, 64)
		p := C.realloc(s.p, C.size_t(newCap))
		if p == nil {
			panic("outbuf: out of memory")
		}
		s.p = p
		s.cap = newCap
	}
	if len(data) > 0 {
		C.memcpy(s.p, unsafe.Pointer(&data[0]), C.size_t(len(data)))
	}
	return s.p
}

func (s *cStorage) Free() {
	C.free(s.p)
	s.p = nil
	s.cap = 0
}
