// Package bridge exports the C ABI of the library. Handles are small C
// structs holding an id into a Go-side table, so no Go pointer outlives a
// call. Every export recovers panics and turns them into its failure value.
package bridge

/*
#cgo CFLAGS: -I${SRCDIR}/../../include
#define ASR_NO_PROTOTYPES
#include "asr.h"
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/asr-runtime/handle"
	"github.com/wippyai/asr-runtime/outbuf"
)

func newStoreShell(h handle.Handle) *C.SettingsStore {
	p := (*C.SettingsStore)(C.malloc(C.size_t(unsafe.Sizeof(C.SettingsStore{}))))
	p.id = C.uint32_t(h)
	return p
}

func newRuntimeShell(h handle.Handle) *C.Runtime {
	p := (*C.Runtime)(C.malloc(C.size_t(unsafe.Sizeof(C.Runtime{}))))
	p.id = C.uint32_t(h)
	return p
}

// goString converts a host string. NULL is the empty string.
func goString(s *C.char) string {
	if s == nil {
		return ""
	}
	return C.GoString(s)
}

func runtimeHandle(rt *C.Runtime) handle.Handle {
	if rt == nil {
		return 0
	}
	return handle.Handle(rt.id)
}

// ============================================================
// Settings store
// ============================================================

//export SettingsStore_new
func SettingsStore_new() *C.SettingsStore {
	setup()
	return safeCallResult[*C.SettingsStore]("SettingsStore_new", nil, func() *C.SettingsStore {
		return newStoreShell(newStore())
	})
}

//export SettingsStore_drop
func SettingsStore_drop(store *C.SettingsStore) {
	setup()
	if store == nil {
		return
	}
	safeCall("SettingsStore_drop", func() {
		dropStore(handle.Handle(store.id))
	})
	C.free(unsafe.Pointer(store))
}

//export SettingsStore_set_bool
func SettingsStore_set_bool(store *C.SettingsStore, key *C.char, value C.bool) {
	setup()
	if store == nil {
		log.Warn("SettingsStore_set_bool: NULL store")
		return
	}
	safeCall("SettingsStore_set_bool", func() {
		setStoreBool(handle.Handle(store.id), goString(key), bool(value))
	})
}

// ============================================================
// Runtime
// ============================================================

//export Runtime_new
func Runtime_new(
	path *C.char,
	store *C.SettingsStore,
	ctx C.uintptr_t,
	state C.asr_state_fn,
	start C.asr_action_fn,
	split C.asr_action_fn,
	skipSplit C.asr_action_fn,
	undoSplit C.asr_action_fn,
	reset C.asr_action_fn,
	setGameTime C.asr_set_game_time_fn,
	pauseGameTime C.asr_action_fn,
	resumeGameTime C.asr_action_fn,
	logFn C.asr_log_fn,
) *C.Runtime {
	setup()

	// The store is consumed whatever happens next.
	var storeID handle.Handle
	if store != nil {
		storeID = handle.Handle(store.id)
		C.free(unsafe.Pointer(store))
	}

	return safeCallResult[*C.Runtime]("Runtime_new", nil, func() *C.Runtime {
		st := takeStoreOrNil(storeID)
		host := &cHost{
			ctx:            ctx,
			state:          state,
			start:          start,
			split:          split,
			skipSplit:      skipSplit,
			undoSplit:      undoSplit,
			reset:          reset,
			setGameTime:    setGameTime,
			pauseGameTime:  pauseGameTime,
			resumeGameTime: resumeGameTime,
			log:            logFn,
		}
		h, ok := newRuntime(goString(path), st, host)
		if !ok {
			return nil
		}
		return newRuntimeShell(h)
	})
}

//export Runtime_drop
func Runtime_drop(rt *C.Runtime) {
	setup()
	if rt == nil {
		return
	}
	safeCall("Runtime_drop", func() {
		dropRuntime(runtimeHandle(rt))
	})
	C.free(unsafe.Pointer(rt))
}

//export Runtime_step
func Runtime_step(rt *C.Runtime) C.bool {
	setup()
	return safeCallResult[C.bool]("Runtime_step", false, func() C.bool {
		return C.bool(stepRuntime(runtimeHandle(rt)))
	})
}

//export Runtime_tick_rate
func Runtime_tick_rate(rt *C.Runtime) C.uint64_t {
	setup()
	return safeCallResult[C.uint64_t]("Runtime_tick_rate", 0, func() C.uint64_t {
		return C.uint64_t(tickRateMicros(runtimeHandle(rt)))
	})
}

//export Runtime_user_settings_len
func Runtime_user_settings_len(rt *C.Runtime) C.size_t {
	setup()
	return safeCallResult[C.size_t]("Runtime_user_settings_len", 0, func() C.size_t {
		return C.size_t(userSettingsLen(runtimeHandle(rt)))
	})
}

//export Runtime_user_settings_get_key
func Runtime_user_settings_get_key(rt *C.Runtime, idx C.size_t) *C.char {
	setup()
	return safeCallString("Runtime_user_settings_get_key", func() *C.char {
		return (*C.char)(userSettingKey(runtimeHandle(rt), index(uint64(idx))))
	})
}

//export Runtime_user_settings_get_description
func Runtime_user_settings_get_description(rt *C.Runtime, idx C.size_t) *C.char {
	setup()
	return safeCallString("Runtime_user_settings_get_description", func() *C.char {
		return (*C.char)(userSettingDescription(runtimeHandle(rt), index(uint64(idx))))
	})
}

//export Runtime_user_settings_get_tooltip
func Runtime_user_settings_get_tooltip(rt *C.Runtime, idx C.size_t) *C.char {
	setup()
	return safeCallString("Runtime_user_settings_get_tooltip", func() *C.char {
		return (*C.char)(userSettingTooltip(runtimeHandle(rt), index(uint64(idx))))
	})
}

//export Runtime_user_settings_get_type
func Runtime_user_settings_get_type(rt *C.Runtime, idx C.size_t) C.size_t {
	setup()
	return safeCallResult[C.size_t]("Runtime_user_settings_get_type", 0, func() C.size_t {
		return C.size_t(userSettingType(runtimeHandle(rt), index(uint64(idx))))
	})
}

//export Runtime_user_settings_get_bool
func Runtime_user_settings_get_bool(rt *C.Runtime, idx C.size_t) C.bool {
	setup()
	return safeCallResult[C.bool]("Runtime_user_settings_get_bool", false, func() C.bool {
		return C.bool(userSettingBool(runtimeHandle(rt), index(uint64(idx))))
	})
}

// ============================================================
// Output buffer
// ============================================================

//export get_buf_len
func get_buf_len() C.size_t {
	return safeCallResult[C.size_t]("get_buf_len", 0, func() C.size_t {
		return C.size_t(outbuf.Len())
	})
}

//export free_buf
func free_buf() {
	safeCall("free_buf", func() {
		outbuf.ReleaseCurrent()
		log.Debug("output buffer released", zap.Int("threads", outbuf.Threads()))
	})
}
