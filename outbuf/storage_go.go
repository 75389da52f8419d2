//go:build !cgo

package outbuf

import "unsafe"

// goStorage is used when cgo is disabled. Without cgo no foreign host can
// hold the pointer, so Go memory is enough.
type goStorage struct {
	buf []byte
}

func newDefaultStorage() Storage {
	return &goStorage{}
}

func (s *goStorage) Store(data []byte) unsafe.Pointer {
	s.buf = append(s.buf[:0], data...)
	if len(s.buf) == 0 {
		return nil
	}
	return unsafe.Pointer(&s.buf[0])
}

func (s *goStorage) Free() {
	s.buf = nil
}
