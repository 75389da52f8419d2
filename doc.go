// Package asrruntime hosts auto splitter scripts behind a C ABI.
//
// An auto splitter is a WebAssembly module that watches a game and drives a
// speedrun timer: it starts, splits and resets the run and reports game
// time. This module runs such scripts with wazero and exposes them to a
// native timer application as a shared library.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	asrruntime/
//	├── asr/             wazero engine and the env host module scripts link against
//	│   └── asrtest/     In-process builder for test scripts
//	├── session/         Runtime lifecycle: open, step, tick rate, settings queries
//	├── timer/           Timer capability and the adapter over host callbacks
//	├── settings/        Settings store and declared user settings
//	├── outbuf/          Per-thread buffer for strings returned to the host
//	├── handle/          Handle table backing the opaque C handles
//	├── timeconv/        Conversions to the host's time units
//	├── errors/          Structured error types for debugging
//	├── internal/bridge/ cgo exports declared in include/asr.h
//	└── cmd/
//	    ├── libasr/      c-shared build of the library
//	    └── asr-debug/   Terminal host for trying scripts
//
// # Quick Start
//
// Build the shared library:
//
//	go build -buildmode=c-shared -o libasr.so ./cmd/libasr
//
// From Go, open a script against any timer.Host:
//
//	sess, err := session.Open(ctx, "splitter.wasm", settings.NewStore(), host, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sess.Close(ctx)
//
//	for {
//	    if err := sess.Step(ctx); err != nil {
//	        log.Print(err)
//	    }
//	    time.Sleep(sess.TickRate())
//	}
//
// # Thread Safety
//
// A runtime is not reentrant: host callbacks run synchronously inside a step
// and must not step the same runtime. Independent runtimes may live on
// different threads. Returned strings live in the calling thread's buffer
// until that thread's next string-returning call.
package asrruntime
