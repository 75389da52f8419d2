// Package main builds the auto splitting runtime as a C shared library:
//
//	go build -buildmode=c-shared -o libasr.so ./cmd/libasr
//
// The exported functions are declared in include/asr.h.
package main

import "C"

import (
	// Registers every exported function.
	_ "github.com/wippyai/asr-runtime/internal/bridge"
)

// main is required by c-shared builds and never runs.
func main() {}
