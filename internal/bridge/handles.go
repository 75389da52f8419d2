package bridge

import (
	"context"
	"math"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/asr-runtime/handle"
	"github.com/wippyai/asr-runtime/outbuf"
	"github.com/wippyai/asr-runtime/session"
	"github.com/wippyai/asr-runtime/settings"
	"github.com/wippyai/asr-runtime/timer"
)

// Type ids of values living in the handle table.
const (
	typeSettingsStore uint32 = iota + 1
	typeRuntime
)

var (
	table    = handle.NewTable()
	stores   = handle.NewTyped[*settings.Store](table, typeSettingsStore)
	runtimes = handle.NewTyped[*runtimeEntry](table, typeRuntime)
)

func init() {
	table.Subscribe(handle.ObserverFunc(func(e handle.Event) {
		log.Debug("handle",
			zap.Stringer("event", e.Type),
			zap.Uint32("handle", uint32(e.Handle)),
			zap.Uint32("type", e.TypeID))
	}))
}

// runtimeEntry is the value behind a Runtime handle.
type runtimeEntry struct {
	sess *session.Session
}

// Drop closes the session when the handle is released.
func (e *runtimeEntry) Drop() {
	if err := e.sess.Close(context.Background()); err != nil {
		log.Warn("close runtime", zap.Error(err))
	}
}

func newStore() handle.Handle {
	return stores.Insert(settings.NewStore())
}

func setStoreBool(h handle.Handle, key string, value bool) bool {
	st, ok := stores.Get(h)
	if !ok {
		log.Warn("SettingsStore_set_bool: unknown store", zap.Uint32("handle", uint32(h)))
		return false
	}
	st.SetBool(key, value)
	return true
}

func dropStore(h handle.Handle) bool {
	if !stores.Release(h) {
		log.Warn("SettingsStore_drop: unknown store", zap.Uint32("handle", uint32(h)))
		return false
	}
	return true
}

// takeStore moves the store out of the table. An unknown handle yields an
// empty store so construction can still proceed.
func takeStore(h handle.Handle) *settings.Store {
	st, ok := stores.Take(h)
	if !ok {
		log.Warn("Runtime_new: unknown store, using an empty one", zap.Uint32("handle", uint32(h)))
		return settings.NewStore()
	}
	return st
}

// takeStoreOrNil is takeStore for an optional handle; 0 yields nil, which
// the engine treats as an empty store.
func takeStoreOrNil(h handle.Handle) *settings.Store {
	if h == 0 {
		return nil
	}
	return takeStore(h)
}

func newRuntime(path string, store *settings.Store, host timer.Host) (handle.Handle, bool) {
	sess, err := session.Open(context.Background(), path, store, host, engineCfg)
	if err != nil {
		log.Warn("Runtime_new failed", zap.String("path", path), zap.Error(err))
		return 0, false
	}
	return runtimes.Insert(&runtimeEntry{sess: sess}), true
}

func lookupRuntime(fn string, h handle.Handle) (*session.Session, bool) {
	e, ok := runtimes.Get(h)
	if !ok {
		log.Warn(fn+": unknown runtime", zap.Uint32("handle", uint32(h)))
		return nil, false
	}
	return e.sess, true
}

func dropRuntime(h handle.Handle) bool {
	if !runtimes.Release(h) {
		log.Warn("Runtime_drop: unknown runtime", zap.Uint32("handle", uint32(h)))
		return false
	}
	return true
}

func stepRuntime(h handle.Handle) bool {
	sess, ok := lookupRuntime("Runtime_step", h)
	if !ok {
		return false
	}
	return sess.Step(context.Background()) == nil
}

func tickRateMicros(h handle.Handle) uint64 {
	sess, ok := lookupRuntime("Runtime_tick_rate", h)
	if !ok {
		return 0
	}
	return sess.TickRateMicros()
}

func userSettingsLen(h handle.Handle) int {
	sess, ok := lookupRuntime("Runtime_user_settings_len", h)
	if !ok {
		return 0
	}
	return sess.UserSettingsLen()
}

// emitUserSetting writes the string produced by get into the calling
// thread's buffer. On any failure the buffer is cleared and nil returned.
func emitUserSetting(fn string, h handle.Handle, idx int, get func(*session.Session, int) (string, error)) unsafe.Pointer {
	sess, ok := lookupRuntime(fn, h)
	if !ok {
		outbuf.Clear()
		return nil
	}
	s, err := get(sess, idx)
	if err != nil {
		outbuf.Clear()
		return nil
	}
	return outbuf.EmitString(s)
}

func userSettingKey(h handle.Handle, idx int) unsafe.Pointer {
	return emitUserSetting("Runtime_user_settings_get_key", h, idx, (*session.Session).UserSettingKey)
}

func userSettingDescription(h handle.Handle, idx int) unsafe.Pointer {
	return emitUserSetting("Runtime_user_settings_get_description", h, idx, (*session.Session).UserSettingDescription)
}

func userSettingTooltip(h handle.Handle, idx int) unsafe.Pointer {
	return emitUserSetting("Runtime_user_settings_get_tooltip", h, idx, (*session.Session).UserSettingTooltip)
}

func userSettingType(h handle.Handle, idx int) uint {
	sess, ok := lookupRuntime("Runtime_user_settings_get_type", h)
	if !ok {
		return settings.TypeOther
	}
	typ, _ := sess.UserSettingType(idx)
	return typ
}

func userSettingBool(h handle.Handle, idx int) bool {
	sess, ok := lookupRuntime("Runtime_user_settings_get_bool", h)
	if !ok {
		return false
	}
	v, _ := sess.UserSettingBool(idx)
	return v
}

// index converts a size_t index; values beyond int become -1, which every
// query treats as out of range.
func index(i uint64) int {
	if i > math.MaxInt {
		return -1
	}
	return int(i)
}
