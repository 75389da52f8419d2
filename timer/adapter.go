package timer

import (
	"time"

	"github.com/wippyai/asr-runtime/timeconv"
)

// Host is the raw callback surface a host hands across the boundary, in the
// host's own units. Every method runs synchronously on the caller's thread.
type Host interface {
	// State returns the host's state code (see StateFromCode).
	State() int32
	Start()
	Split()
	SkipSplit()
	UndoSplit()
	Reset()
	// SetGameTime receives the game time in 100ns ticks.
	SetGameTime(ticks int64)
	PauseGameTime()
	ResumeGameTime()
	// Log receives a nul-terminated message that is valid only for the
	// duration of the call.
	Log(message []byte)
}

// Adapter implements Timer by forwarding to a Host.
type Adapter struct {
	host   Host
	logBuf []byte
}

var _ Timer = (*Adapter)(nil)

// NewAdapter wraps host.
func NewAdapter(host Host) *Adapter {
	return &Adapter{host: host}
}

func (a *Adapter) State() State {
	return StateFromCode(a.host.State())
}

func (a *Adapter) Start()     { a.host.Start() }
func (a *Adapter) Split()     { a.host.Split() }
func (a *Adapter) SkipSplit() { a.host.SkipSplit() }
func (a *Adapter) UndoSplit() { a.host.UndoSplit() }
func (a *Adapter) Reset()     { a.host.Reset() }

func (a *Adapter) SetGameTime(t time.Duration) {
	a.host.SetGameTime(timeconv.Ticks100ns(t))
}

func (a *Adapter) PauseGameTime()  { a.host.PauseGameTime() }
func (a *Adapter) ResumeGameTime() { a.host.ResumeGameTime() }

// SetVariable is accepted and dropped; hosts have no callback for it.
func (a *Adapter) SetVariable(key, value string) {}

// Log copies message into the adapter's own scratch buffer, terminates it and
// hands it to the host. The buffer is reused by the next Log call.
func (a *Adapter) Log(message string) {
	buf := append(a.logBuf[:0], message...)
	buf = append(buf, 0)
	a.logBuf = buf
	a.host.Log(buf)
}
