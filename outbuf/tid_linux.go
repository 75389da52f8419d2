//go:build linux

package outbuf

import "golang.org/x/sys/unix"

func threadID() uint64 {
	return uint64(unix.Gettid())
}

const threadScoped = true
