package asr

import (
	"context"
	"time"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/wippyai/asr-runtime/errors"
	"github.com/wippyai/asr-runtime/settings"
	"github.com/wippyai/asr-runtime/timeconv"
	"github.com/wippyai/asr-runtime/timer"
)

// updateExport is the script function called once per tick.
const updateExport = "update"

// Runtime is one instantiated auto-splitter script.
//
// A Runtime is not safe for concurrent use. Host functions run on the
// goroutine calling Update, so timer callbacks must not call back into the
// same Runtime.
type Runtime struct {
	rt     wazero.Runtime
	mod    api.Module
	update api.Function

	timer        timer.Timer
	store        *settings.Store
	userSettings []settings.UserSetting
	tickRate     time.Duration

	log           *zap.Logger
	processWarned bool
	closed        bool
}

// New compiles and instantiates the script in wasm. The script drives t and
// resolves its settings against store, which the Runtime keeps. A nil store
// is treated as empty. cfg may be nil.
//
// On failure nothing stays allocated.
func New(ctx context.Context, wasm []byte, t timer.Timer, store *settings.Store, cfg *Config) (*Runtime, error) {
	if t == nil {
		return nil, errors.InvalidInput(errors.PhaseLoad, "timer is nil")
	}
	if store == nil {
		store = settings.NewStore()
	}

	r := &Runtime{
		timer:    t,
		store:    store,
		tickRate: timeconv.DefaultTickRate,
		log:      cfg.logger(),
	}

	rt := wazero.NewRuntimeWithConfig(ctx, cfg.runtimeConfig())
	fail := func(err error) (*Runtime, error) {
		_ = rt.Close(ctx)
		r.log.Debug("script load failed", zap.Error(err))
		return nil, err
	}

	compiled, err := rt.CompileModule(ctx, wasm)
	if err != nil {
		return fail(errors.Load("compile script", err))
	}
	if err := checkLinkage(compiled, r.envFuncs()); err != nil {
		return fail(err)
	}
	if err := instantiateWASI(ctx, rt); err != nil {
		return fail(err)
	}
	if err := r.instantiateEnv(ctx, rt); err != nil {
		return fail(err)
	}

	mod, err := rt.InstantiateModule(ctx, compiled, moduleConfig(r.log))
	if err != nil {
		return fail(errors.Instantiation(err))
	}

	r.rt = rt
	r.mod = mod
	r.update = mod.ExportedFunction(updateExport)

	r.log.Debug("script loaded",
		zap.Int("settings", len(r.userSettings)),
		zap.Duration("tick_rate", r.tickRate))
	return r, nil
}

// checkLinkage verifies the script exports update and imports only
// functions this package provides.
func checkLinkage(compiled wazero.CompiledModule, env []hostFunc) error {
	if _, ok := compiled.ExportedFunctions()[updateExport]; !ok {
		return errors.MissingExport(updateExport)
	}

	provided := make(map[string]bool)
	for _, hf := range env {
		provided[hf.name] = true
	}

	var missing []string
	for _, def := range compiled.ImportedFunctions() {
		module, name, _ := def.Import()
		switch module {
		case wasi_snapshot_preview1.ModuleName:
			// wazero reports unknown WASI functions at instantiation.
		case envModule:
			if !provided[name] {
				missing = append(missing, module+"#"+name)
			}
		default:
			missing = append(missing, module+"#"+name)
		}
	}
	if len(missing) > 0 {
		return errors.NewMissingImportsError(missing)
	}
	return nil
}

// Update runs one tick of the script and returns the interval the host
// should wait before the next call.
func (r *Runtime) Update(ctx context.Context) (time.Duration, error) {
	if r.closed {
		return 0, errors.Closed(errors.PhaseRuntime, "runtime")
	}
	if _, err := r.update.Call(ctx); err != nil {
		r.log.Debug("update failed", zap.Error(err))
		return 0, errors.Trap(updateExport, err)
	}
	return r.tickRate, nil
}

// TickRate returns the interval most recently requested by the script, or
// timeconv.DefaultTickRate if it never asked for one.
func (r *Runtime) TickRate() time.Duration {
	return r.tickRate
}

// UserSettings returns the settings the script declared, in declaration
// order. The slice must not be modified.
func (r *Runtime) UserSettings() []settings.UserSetting {
	return r.userSettings
}

// UserSetting returns the i-th declared setting.
func (r *Runtime) UserSetting(i int) (settings.UserSetting, error) {
	if i < 0 || i >= len(r.userSettings) {
		return settings.UserSetting{}, errors.OutOfBounds(errors.PhaseRuntime, "user_setting", i, len(r.userSettings))
	}
	return r.userSettings[i], nil
}

// SettingsStore returns the store the script resolves settings against.
func (r *Runtime) SettingsStore() *settings.Store {
	return r.store
}

// Close releases the script. Further Update calls fail. Close is idempotent.
func (r *Runtime) Close(ctx context.Context) error {
	if r.closed {
		return nil
	}
	r.closed = true
	if err := r.rt.Close(ctx); err != nil {
		return errors.Wrap(errors.PhaseRuntime, errors.KindClosed, err, "close script runtime")
	}
	return nil
}
