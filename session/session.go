// Package session implements the lifecycle of a runtime handle: opening a
// script with a settings store and a host timer, stepping it at the pace the
// script asks for, and answering indexed queries about its user settings.
//
// A Session carries no cgo; internal/bridge maps it onto the exported C
// functions.
package session

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/wippyai/asr-runtime/asr"
	"github.com/wippyai/asr-runtime/errors"
	"github.com/wippyai/asr-runtime/settings"
	"github.com/wippyai/asr-runtime/timeconv"
	"github.com/wippyai/asr-runtime/timer"
)

// ErrIndexOutOfRange matches (with errors.Is) the error returned by the
// indexed user-setting queries for an index outside [0, UserSettingsLen()).
var ErrIndexOutOfRange = &errors.Error{Phase: errors.PhaseBoundary, Kind: errors.KindOutOfBounds}

// Session owns one script runtime and the last tick interval it reported.
type Session struct {
	rt       *asr.Runtime
	timer    *timer.Adapter
	tickRate time.Duration
	log      *zap.Logger
}

// Open reads the script at path and instantiates it against store and host.
// The session takes store; the caller must not use it afterwards. cfg may
// be nil.
func Open(ctx context.Context, path string, store *settings.Store, host timer.Host, cfg *asr.Config) (*Session, error) {
	wasm, err := os.ReadFile(path)
	if err != nil {
		e := errors.NotFound(errors.PhaseLoad, "script", path)
		e.Cause = err
		return nil, e
	}
	return OpenBytes(ctx, wasm, store, host, cfg)
}

// OpenBytes is Open for a script already in memory.
func OpenBytes(ctx context.Context, wasm []byte, store *settings.Store, host timer.Host, cfg *asr.Config) (*Session, error) {
	if host == nil {
		return nil, errors.InvalidInput(errors.PhaseLoad, "timer host is nil")
	}
	log := Logger()
	if cfg != nil && cfg.Logger != nil {
		log = cfg.Logger
	}

	adapter := timer.NewAdapter(host)
	rt, err := asr.New(ctx, wasm, adapter, store, cfg)
	if err != nil {
		log.Warn("script load failed", zap.Error(err))
		return nil, err
	}

	s := &Session{
		rt:       rt,
		timer:    adapter,
		tickRate: timeconv.DefaultTickRate,
		log:      log,
	}
	log.Info("session opened",
		zap.Int("user_settings", len(rt.UserSettings())),
		zap.Int("stored_settings", rt.SettingsStore().Len()))
	return s, nil
}

// Step runs one tick of the script. On success the session records the
// script's tick interval; on failure the previous interval is kept.
func (s *Session) Step(ctx context.Context) error {
	if s.rt == nil {
		return errors.Closed(errors.PhaseBoundary, "session")
	}
	d, err := s.rt.Update(ctx)
	if err != nil {
		s.log.Debug("step failed", zap.Error(err))
		return err
	}
	s.tickRate = d
	return nil
}

// TickRate returns the interval reported by the last successful Step, or
// timeconv.DefaultTickRate before the first one.
func (s *Session) TickRate() time.Duration {
	return s.tickRate
}

// TickRateMicros is TickRate in whole microseconds.
func (s *Session) TickRateMicros() uint64 {
	return timeconv.Micros(s.tickRate)
}

// Timer returns the timer the script drives.
func (s *Session) Timer() timer.Timer {
	return s.timer
}

// UserSettingsLen returns the number of settings the script declared.
func (s *Session) UserSettingsLen() int {
	if s.rt == nil {
		return 0
	}
	return len(s.rt.UserSettings())
}

// UserSettings returns the declared settings in order.
func (s *Session) UserSettings() []settings.UserSetting {
	if s.rt == nil {
		return nil
	}
	return s.rt.UserSettings()
}

func (s *Session) setting(fn string, i int) (settings.UserSetting, error) {
	n := s.UserSettingsLen()
	if s.rt == nil {
		return settings.UserSetting{}, errors.OutOfBounds(errors.PhaseBoundary, fn, i, n)
	}
	us, err := s.rt.UserSetting(i)
	if err != nil {
		s.log.Warn("user setting index out of range", zap.String("func", fn), zap.Int("index", i), zap.Int("len", n))
		e := errors.OutOfBounds(errors.PhaseBoundary, fn, i, n)
		e.Cause = err
		return settings.UserSetting{}, e
	}
	return us, nil
}

// UserSettingKey returns the key of the i-th setting.
func (s *Session) UserSettingKey(i int) (string, error) {
	us, err := s.setting("user_settings_get_key", i)
	return us.Key, err
}

// UserSettingDescription returns the description of the i-th setting.
func (s *Session) UserSettingDescription(i int) (string, error) {
	us, err := s.setting("user_settings_get_description", i)
	return us.Description, err
}

// UserSettingTooltip returns the tooltip of the i-th setting, or "".
func (s *Session) UserSettingTooltip(i int) (string, error) {
	us, err := s.setting("user_settings_get_tooltip", i)
	return us.Tooltip, err
}

// UserSettingType returns settings.TypeBool or settings.TypeOther.
func (s *Session) UserSettingType(i int) (uint, error) {
	us, err := s.setting("user_settings_get_type", i)
	if err != nil {
		return settings.TypeOther, err
	}
	return us.Kind.TypeCode(), nil
}

// UserSettingBool returns the effective value of the i-th setting: the
// stored value if there is one, else the declared default. Settings that
// are not boolean report false.
func (s *Session) UserSettingBool(i int) (bool, error) {
	us, err := s.setting("user_settings_get_bool", i)
	if err != nil {
		return false, err
	}
	return settings.ResolveBool(us, s.rt.SettingsStore()), nil
}

// Close destroys the script runtime. It is safe to call more than once.
func (s *Session) Close(ctx context.Context) error {
	if s.rt == nil {
		return nil
	}
	err := s.rt.Close(ctx)
	s.rt = nil
	s.log.Info("session closed")
	return err
}
