package bridge

/*
#cgo CFLAGS: -I${SRCDIR}/../../include
#define ASR_NO_PROTOTYPES
#include "asr.h"

// Trampolines for the host's function pointers. The context arrives as an
// integer so Go never holds it as a pointer.
static inline int32_t asr_call_state(asr_state_fn fn, uintptr_t ctx) {
    if (fn) {
        return fn((void*)ctx);
    }
    return 0;
}

static inline void asr_call_action(asr_action_fn fn, uintptr_t ctx) {
    if (fn) {
        fn((void*)ctx);
    }
}

static inline void asr_call_set_game_time(asr_set_game_time_fn fn, uintptr_t ctx, int64_t ticks) {
    if (fn) {
        fn((void*)ctx, ticks);
    }
}

static inline void asr_call_log(asr_log_fn fn, uintptr_t ctx, const char* msg) {
    if (fn) {
        fn((void*)ctx, msg);
    }
}
*/
import "C"

import (
	"unsafe"

	"github.com/wippyai/asr-runtime/timer"
)

// cHost is a timer.Host backed by the ten callbacks given to Runtime_new.
// Missing callbacks are skipped; a missing state callback reports "not
// running".
type cHost struct {
	ctx            C.uintptr_t
	state          C.asr_state_fn
	start          C.asr_action_fn
	split          C.asr_action_fn
	skipSplit      C.asr_action_fn
	undoSplit      C.asr_action_fn
	reset          C.asr_action_fn
	setGameTime    C.asr_set_game_time_fn
	pauseGameTime  C.asr_action_fn
	resumeGameTime C.asr_action_fn
	log            C.asr_log_fn
}

var _ timer.Host = (*cHost)(nil)

func (h *cHost) State() int32 {
	return int32(C.asr_call_state(h.state, h.ctx))
}

func (h *cHost) Start()          { C.asr_call_action(h.start, h.ctx) }
func (h *cHost) Split()          { C.asr_call_action(h.split, h.ctx) }
func (h *cHost) SkipSplit()      { C.asr_call_action(h.skipSplit, h.ctx) }
func (h *cHost) UndoSplit()      { C.asr_call_action(h.undoSplit, h.ctx) }
func (h *cHost) Reset()          { C.asr_call_action(h.reset, h.ctx) }
func (h *cHost) PauseGameTime()  { C.asr_call_action(h.pauseGameTime, h.ctx) }
func (h *cHost) ResumeGameTime() { C.asr_call_action(h.resumeGameTime, h.ctx) }

func (h *cHost) SetGameTime(ticks int64) {
	C.asr_call_set_game_time(h.setGameTime, h.ctx, C.int64_t(ticks))
}

// Log passes message, which must be nul-terminated, to the host. The bytes
// are Go memory the host may read only during the call.
func (h *cHost) Log(message []byte) {
	if len(message) == 0 || message[len(message)-1] != 0 {
		return
	}
	C.asr_call_log(h.log, h.ctx, (*C.char)(unsafe.Pointer(&message[0])))
}
