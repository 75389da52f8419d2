package bridge

/*
#cgo CFLAGS: -I${SRCDIR}/../../include
#define ASR_NO_PROTOTYPES
#include "asr.h"
#include <stdlib.h>
#include <string.h>

// A C timer host that records every callback with the context it received.
// The package tests drive the exported functions through it.

#define ASR_REC_MAX 64

enum {
    ASR_REC_STATE,
    ASR_REC_START,
    ASR_REC_SPLIT,
    ASR_REC_SKIP_SPLIT,
    ASR_REC_UNDO_SPLIT,
    ASR_REC_RESET,
    ASR_REC_SET_GAME_TIME,
    ASR_REC_PAUSE_GAME_TIME,
    ASR_REC_RESUME_GAME_TIME,
    ASR_REC_LOG,
};

typedef struct {
    int n;
    int call[ASR_REC_MAX];
    uintptr_t ctx[ASR_REC_MAX];
    int32_t state;
    int64_t ticks;
    char log[256];
    size_t log_len;
} asr_recorder;

static asr_recorder asr_rec;

static void asr_rec_clear(int32_t state) {
    memset(&asr_rec, 0, sizeof(asr_rec));
    asr_rec.state = state;
}

static void asr_rec_push(void* ctx, int call) {
    if (asr_rec.n < ASR_REC_MAX) {
        asr_rec.call[asr_rec.n] = call;
        asr_rec.ctx[asr_rec.n] = (uintptr_t)ctx;
        asr_rec.n++;
    }
}

int32_t asr_rec_cb_state(void* ctx) {
    asr_rec_push(ctx, ASR_REC_STATE);
    return asr_rec.state;
}

void asr_rec_cb_start(void* ctx) { asr_rec_push(ctx, ASR_REC_START); }
void asr_rec_cb_split(void* ctx) { asr_rec_push(ctx, ASR_REC_SPLIT); }
void asr_rec_cb_skip_split(void* ctx) { asr_rec_push(ctx, ASR_REC_SKIP_SPLIT); }
void asr_rec_cb_undo_split(void* ctx) { asr_rec_push(ctx, ASR_REC_UNDO_SPLIT); }
void asr_rec_cb_reset(void* ctx) { asr_rec_push(ctx, ASR_REC_RESET); }
void asr_rec_cb_pause_game_time(void* ctx) { asr_rec_push(ctx, ASR_REC_PAUSE_GAME_TIME); }
void asr_rec_cb_resume_game_time(void* ctx) { asr_rec_push(ctx, ASR_REC_RESUME_GAME_TIME); }

void asr_rec_cb_set_game_time(void* ctx, int64_t ticks) {
    asr_rec_push(ctx, ASR_REC_SET_GAME_TIME);
    asr_rec.ticks = ticks;
}

void asr_rec_cb_log(void* ctx, const char* message) {
    asr_rec_push(ctx, ASR_REC_LOG);
    asr_rec.log_len = strlen(message);
    strncpy(asr_rec.log, message, sizeof(asr_rec.log) - 1);
    asr_rec.log[sizeof(asr_rec.log) - 1] = 0;
}

static int asr_rec_count(void) { return asr_rec.n; }
static int asr_rec_call(int i) { return asr_rec.call[i]; }
static uintptr_t asr_rec_ctx(int i) { return asr_rec.ctx[i]; }
static int64_t asr_rec_ticks(void) { return asr_rec.ticks; }
static const char* asr_rec_log(void) { return asr_rec.log; }
static size_t asr_rec_log_len(void) { return asr_rec.log_len; }
*/
import "C"

import (
	"unsafe"

	"github.com/wippyai/asr-runtime/handle"
)

// hostCall is one callback seen by the recording host.
type hostCall struct {
	ctx  uintptr
	name string
}

var hostCallNames = [...]string{
	"state", "start", "split", "skip_split", "undo_split",
	"reset", "set_game_time", "pause_game_time", "resume_game_time", "log",
}

// clearRecorder forgets recorded calls; the state callback reports state.
func clearRecorder(state int32) {
	C.asr_rec_clear(C.int32_t(state))
}

func recordedCalls() []hostCall {
	n := int(C.asr_rec_count())
	calls := make([]hostCall, n)
	for i := range calls {
		calls[i] = hostCall{
			ctx:  uintptr(C.asr_rec_ctx(C.int(i))),
			name: hostCallNames[C.asr_rec_call(C.int(i))],
		}
	}
	return calls
}

func recordedTicks() int64 {
	return int64(C.asr_rec_ticks())
}

// recordedLog returns the last logged message and its strlen as seen by C.
func recordedLog() (string, int) {
	return C.GoString(C.asr_rec_log()), int(C.asr_rec_log_len())
}

// newRecordingRuntime calls Runtime_new with the recording callbacks, or
// with every callback NULL when bare is set. An empty path is passed as
// NULL.
func newRecordingRuntime(path string, store *C.SettingsStore, ctx uintptr, bare bool) *C.Runtime {
	var cpath *C.char
	if path != "" {
		cpath = C.CString(path)
		defer C.free(unsafe.Pointer(cpath))
	}
	if bare {
		return Runtime_new(cpath, store, C.uintptr_t(ctx), nil, nil, nil, nil, nil, nil, nil, nil, nil, nil)
	}
	return Runtime_new(cpath, store, C.uintptr_t(ctx),
		C.asr_state_fn(C.asr_rec_cb_state),
		C.asr_action_fn(C.asr_rec_cb_start),
		C.asr_action_fn(C.asr_rec_cb_split),
		C.asr_action_fn(C.asr_rec_cb_skip_split),
		C.asr_action_fn(C.asr_rec_cb_undo_split),
		C.asr_action_fn(C.asr_rec_cb_reset),
		C.asr_set_game_time_fn(C.asr_rec_cb_set_game_time),
		C.asr_action_fn(C.asr_rec_cb_pause_game_time),
		C.asr_action_fn(C.asr_rec_cb_resume_game_time),
		C.asr_log_fn(C.asr_rec_cb_log),
	)
}

// setStoreBoolC calls SettingsStore_set_bool with key as a C string, or
// NULL when nullKey is set.
func setStoreBoolC(store *C.SettingsStore, key string, nullKey, value bool) {
	var ckey *C.char
	if !nullKey {
		ckey = C.CString(key)
		defer C.free(unsafe.Pointer(ckey))
	}
	SettingsStore_set_bool(store, ckey, C.bool(value))
}

func storeHandle(store *C.SettingsStore) handle.Handle {
	return handle.Handle(store.id)
}

func stepC(rt *C.Runtime) bool {
	return bool(Runtime_step(rt))
}

func tickRateC(rt *C.Runtime) uint64 {
	return uint64(Runtime_tick_rate(rt))
}

func settingsLenC(rt *C.Runtime) int {
	return int(Runtime_user_settings_len(rt))
}

func bufLenC() int {
	return int(get_buf_len())
}

func settingTypeC(rt *C.Runtime, i uint64) uint {
	return uint(Runtime_user_settings_get_type(rt, C.size_t(i)))
}

func settingBoolC(rt *C.Runtime, i uint64) bool {
	return bool(Runtime_user_settings_get_bool(rt, C.size_t(i)))
}

// settingKeyC reads a key the way a C host does: the returned pointer plus
// get_buf_len. ok is false for NULL or a missing terminator.
func settingKeyC(rt *C.Runtime, i uint64) (key string, ok bool) {
	p := Runtime_user_settings_get_key(rt, C.size_t(i))
	if p == nil {
		return "", false
	}
	n := int(get_buf_len())
	b := unsafe.Slice((*byte)(unsafe.Pointer(p)), n+1)
	if b[n] != 0 {
		return "", false
	}
	return string(b[:n]), true
}
