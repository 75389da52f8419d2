package main

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wippyai/asr-runtime/timer"
)

// split is one recorded split.
type split struct {
	name    string
	at      time.Duration
	skipped bool
}

// debugHost is an in-process timer.Host with a wall clock and a split list.
// It is not safe for concurrent use; the TUI and the plain loop drive it from
// a single goroutine.
type debugHost struct {
	now      func() time.Time
	segments []string

	state     timer.State
	resumedAt time.Time
	elapsed   time.Duration
	splits    []split

	gameTime    time.Duration
	gameTimeSet bool
	gamePaused  bool

	events []string
	logs   []string
}

var _ timer.Host = (*debugHost)(nil)

func newDebugHost(segments []string) *debugHost {
	return &debugHost{now: time.Now, segments: segments}
}

func (h *debugHost) State() int32 { return h.state.Code() }

func (h *debugHost) Start() {
	if h.state != timer.NotRunning {
		return
	}
	h.state = timer.Running
	h.resumedAt = h.now()
	h.elapsed = 0
	h.event("start")
}

func (h *debugHost) Split()     { h.addSplit(false) }
func (h *debugHost) SkipSplit() { h.addSplit(true) }

func (h *debugHost) addSplit(skipped bool) {
	if h.state != timer.Running && h.state != timer.Paused {
		return
	}
	s := split{name: h.segmentName(len(h.splits)), at: h.Elapsed(), skipped: skipped}
	h.splits = append(h.splits, s)
	if skipped {
		h.event("skip " + s.name)
	} else {
		h.event(fmt.Sprintf("split %s at %s", s.name, formatDuration(s.at)))
	}
	if len(h.segments) > 0 && len(h.splits) >= len(h.segments) {
		h.elapsed = h.Elapsed()
		h.state = timer.Ended
		h.event("run ended")
	}
}

func (h *debugHost) UndoSplit() {
	if len(h.splits) == 0 {
		return
	}
	last := h.splits[len(h.splits)-1]
	h.splits = h.splits[:len(h.splits)-1]
	if h.state == timer.Ended {
		h.state = timer.Running
		h.resumedAt = h.now()
	}
	h.event("undo " + last.name)
}

func (h *debugHost) Reset() {
	h.state = timer.NotRunning
	h.elapsed = 0
	h.splits = nil
	h.gameTime = 0
	h.gameTimeSet = false
	h.gamePaused = false
	h.event("reset")
}

func (h *debugHost) SetGameTime(ticks int64) {
	h.gameTime = time.Duration(ticks) * 100
	h.gameTimeSet = true
}

func (h *debugHost) PauseGameTime() {
	if !h.gamePaused {
		h.gamePaused = true
		h.event("game time paused")
	}
}

func (h *debugHost) ResumeGameTime() {
	if h.gamePaused {
		h.gamePaused = false
		h.event("game time resumed")
	}
}

func (h *debugHost) Log(message []byte) {
	h.logs = append(h.logs, string(bytes.TrimSuffix(message, []byte{0})))
}

// TogglePause pauses or resumes the real-time clock. Only a running or
// paused timer is affected.
func (h *debugHost) TogglePause() {
	switch h.state {
	case timer.Running:
		h.elapsed = h.Elapsed()
		h.state = timer.Paused
		h.event("paused")
	case timer.Paused:
		h.resumedAt = h.now()
		h.state = timer.Running
		h.event("resumed")
	}
}

// Elapsed returns the real time accumulated by the current run.
func (h *debugHost) Elapsed() time.Duration {
	if h.state == timer.Running {
		return h.elapsed + h.now().Sub(h.resumedAt)
	}
	return h.elapsed
}

func (h *debugHost) segmentName(i int) string {
	if i < len(h.segments) {
		return h.segments[i]
	}
	return fmt.Sprintf("#%d", i+1)
}

func (h *debugHost) event(s string) {
	h.events = append(h.events, s)
}

// formatDuration renders d as [h:]mm:ss.cc.
func formatDuration(d time.Duration) string {
	neg := d < 0
	if neg {
		d = -d
	}
	cs := d / (10 * time.Millisecond)
	hours := cs / 360000
	mins := cs / 6000 % 60
	secs := cs / 100 % 60
	frac := cs % 100
	var s string
	if hours > 0 {
		s = fmt.Sprintf("%d:%02d:%02d.%02d", hours, mins, secs, frac)
	} else {
		s = fmt.Sprintf("%02d:%02d.%02d", mins, secs, frac)
	}
	if neg {
		return "-" + s
	}
	return s
}
