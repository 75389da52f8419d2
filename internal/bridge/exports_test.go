//go:build cgo

package bridge

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/wippyai/asr-runtime/asr/asrtest"
	"github.com/wippyai/asr-runtime/settings"
	"github.com/wippyai/asr-runtime/timer"
)

func TestExports_CallbacksReceiveContext(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer free_buf()

	const ctx = uintptr(0xC0FFEE)

	s := asrtest.New()
	s.Init(
		s.SetTickRate(60),
		s.AddBool("split_start", "Split on start", true),
	)
	s.Update(
		asrtest.WhenState(timer.Paused.Code(), asrtest.Call("timer_start")),
		asrtest.Call("timer_split"),
		asrtest.Call("timer_skip_split"),
		asrtest.Call("timer_undo_split"),
		asrtest.Call("timer_reset"),
		asrtest.SetGameTime(1, 500),
		asrtest.Call("timer_pause_game_time"),
		asrtest.Call("timer_resume_game_time"),
		s.PrintMessage("hello"),
	)
	path := scriptFile(t, s)

	before := table.Len()
	clearRecorder(timer.Paused.Code())

	st := SettingsStore_new()
	if st == nil {
		t.Fatal("SettingsStore_new returned NULL")
	}
	setStoreBoolC(st, "split_start", false, false)

	rt := newRecordingRuntime(path, st, ctx, false)
	if rt == nil {
		t.Fatal("Runtime_new returned NULL")
	}
	if table.Len() != before+1 {
		t.Errorf("table.Len() = %d, want %d: the store should be consumed", table.Len(), before+1)
	}
	if !stepC(rt) {
		t.Fatal("Runtime_step failed")
	}
	if got := tickRateC(rt); got != 16666 {
		t.Errorf("Runtime_tick_rate = %d, want 16666", got)
	}

	want := []string{
		"state", "start", "split", "skip_split", "undo_split",
		"reset", "set_game_time", "pause_game_time", "resume_game_time", "log",
	}
	calls := recordedCalls()
	if len(calls) != len(want) {
		t.Fatalf("recorded %d calls %v, want %d", len(calls), calls, len(want))
	}
	for i, c := range calls {
		if c.name != want[i] {
			t.Errorf("call %d = %s, want %s", i, c.name, want[i])
		}
		if c.ctx != ctx {
			t.Errorf("call %d context = %#x, want %#x", i, c.ctx, ctx)
		}
	}
	if got := recordedTicks(); got != 10_000_005 {
		t.Errorf("game time ticks = %d, want 10000005", got)
	}
	if msg, n := recordedLog(); msg != "hello" || n != len("hello") {
		t.Errorf("log = %q (strlen %d), want \"hello\"", msg, n)
	}

	if n := settingsLenC(rt); n != 1 {
		t.Fatalf("Runtime_user_settings_len = %d, want 1", n)
	}
	key, ok := settingKeyC(rt, 0)
	if !ok || key != "split_start" {
		t.Errorf("key = %q (ok %v), want split_start", key, ok)
	}
	if bufLenC() != len("split_start") {
		t.Errorf("get_buf_len = %d", bufLenC())
	}
	if settingTypeC(rt, 0) != settings.TypeBool {
		t.Errorf("type = %d, want bool", settingTypeC(rt, 0))
	}
	if settingBoolC(rt, 0) {
		t.Error("stored false should win over default true")
	}

	Runtime_drop(rt)
	if table.Len() != before {
		t.Errorf("table.Len() = %d after drop, want %d", table.Len(), before)
	}
}

func TestExports_NullArguments(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer free_buf()

	before := table.Len()

	st := SettingsStore_new()
	setStoreBoolC(st, "", true, true)
	stored, ok := stores.Get(storeHandle(st))
	if !ok {
		t.Fatal("store missing")
	}
	if v, found := stored.Bool(""); !found || !v {
		t.Errorf("NULL key should be stored as the empty key, got %v (found %v)", v, found)
	}
	SettingsStore_drop(st)
	SettingsStore_drop(nil)
	setStoreBoolC(nil, "k", false, true)

	s := asrtest.New()
	s.Init(s.AddBool("a", "A", true))
	s.Update(
		asrtest.WhenState(timer.NotRunning.Code(), asrtest.Call("timer_start")),
		asrtest.SetGameTime(2, 0),
		s.PrintMessage("ignored"),
	)
	path := scriptFile(t, s)

	clearRecorder(0)
	rt := newRecordingRuntime(path, nil, 0, true)
	if rt == nil {
		t.Fatal("Runtime_new with NULL callbacks and store returned NULL")
	}
	if !stepC(rt) {
		t.Fatal("Runtime_step failed with NULL callbacks")
	}
	if n := len(recordedCalls()); n != 0 {
		t.Errorf("recorded %d calls with NULL callbacks", n)
	}
	if !settingBoolC(rt, 0) {
		t.Error("a NULL store should leave the default in place")
	}
	Runtime_drop(rt)
	Runtime_drop(nil)

	if stepC(nil) || tickRateC(nil) != 0 || settingsLenC(nil) != 0 {
		t.Error("a NULL runtime should report failure")
	}
	if _, ok := settingKeyC(nil, 0); ok {
		t.Error("key of a NULL runtime should be NULL")
	}
	if bufLenC() != 0 {
		t.Errorf("get_buf_len = %d after a failed query", bufLenC())
	}

	if newRecordingRuntime("", nil, 0, false) != nil {
		t.Error("Runtime_new with a NULL path should fail")
	}
	st = SettingsStore_new()
	missing := filepath.Join(t.TempDir(), "nope.wasm")
	if newRecordingRuntime(missing, st, 0, false) != nil {
		t.Error("Runtime_new with a missing file should fail")
	}
	if table.Len() != before {
		t.Errorf("table.Len() = %d, want %d: failed construction must still consume the store", table.Len(), before)
	}
}
