// Package timer defines the timer-control capability an auto-splitter script
// drives, and the adapter that implements it on top of ten raw host
// callbacks.
package timer

import "time"

// State is the state of the timer being controlled.
type State int32

const (
	NotRunning State = iota
	Running
	Paused
	Ended
)

// StateFromCode maps a host state code to a State. 1, 2 and 3 are Running,
// Paused and Ended; every other code is NotRunning.
func StateFromCode(code int32) State {
	switch code {
	case 1:
		return Running
	case 2:
		return Paused
	case 3:
		return Ended
	default:
		return NotRunning
	}
}

// Code returns the integer code of s as seen by hosts and scripts.
func (s State) Code() int32 {
	return int32(s)
}

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Ended:
		return "ended"
	default:
		return "not running"
	}
}

// Timer is the set of operations a script may perform on the timer.
// Methods other than State are notifications; the caller does not learn
// whether the timer acted on them.
type Timer interface {
	State() State
	Start()
	Split()
	SkipSplit()
	UndoSplit()
	Reset()
	SetGameTime(t time.Duration)
	PauseGameTime()
	ResumeGameTime()
	SetVariable(key, value string)
	Log(message string)
}
