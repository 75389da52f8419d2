package asr

import (
	"context"
	goruntime "runtime"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/asr-runtime/errors"
	"github.com/wippyai/asr-runtime/settings"
	"github.com/wippyai/asr-runtime/timeconv"
)

// envModule is the import module scripts link their host functions from.
const envModule = "env"

const (
	i32 = api.ValueTypeI32
	i64 = api.ValueTypeI64
	f64 = api.ValueTypeF64
)

type hostFunc struct {
	name    string
	params  []api.ValueType
	results []api.ValueType
	fn      api.GoModuleFunc
}

// envFuncs returns the script ABI bound to r.
func (r *Runtime) envFuncs() []hostFunc {
	return []hostFunc{
		// Timer
		{"timer_get_state", nil, []api.ValueType{i32}, r.timerGetState},
		{"timer_start", nil, nil, r.action(r.timer.Start)},
		{"timer_split", nil, nil, r.action(r.timer.Split)},
		{"timer_skip_split", nil, nil, r.action(r.timer.SkipSplit)},
		{"timer_undo_split", nil, nil, r.action(r.timer.UndoSplit)},
		{"timer_reset", nil, nil, r.action(r.timer.Reset)},
		{"timer_set_variable", []api.ValueType{i32, i32, i32, i32}, nil, r.timerSetVariable},
		{"timer_set_game_time", []api.ValueType{i64, i32}, nil, r.timerSetGameTime},
		{"timer_pause_game_time", nil, nil, r.action(r.timer.PauseGameTime)},
		{"timer_resume_game_time", nil, nil, r.action(r.timer.ResumeGameTime)},

		// Runtime
		{"runtime_set_tick_rate", []api.ValueType{f64}, nil, r.setTickRate},
		{"runtime_print_message", []api.ValueType{i32, i32}, nil, r.printMessage},
		{"runtime_get_os", []api.ValueType{i32, i32}, []api.ValueType{i32}, r.hostInfo("runtime_get_os", osName(goruntime.GOOS))},
		{"runtime_get_arch", []api.ValueType{i32, i32}, []api.ValueType{i32}, r.hostInfo("runtime_get_arch", archName(goruntime.GOARCH))},

		// User settings
		{"user_settings_add_bool", []api.ValueType{i32, i32, i32, i32, i32}, []api.ValueType{i32}, r.addBoolSetting},
		{"user_settings_add_title", []api.ValueType{i32, i32, i32, i32, i32}, nil, r.addTitleSetting},
		{"user_settings_set_tooltip", []api.ValueType{i32, i32, i32, i32}, nil, r.setTooltip},

		// Process
		{"process_attach", []api.ValueType{i32, i32}, []api.ValueType{i64}, r.noProcess("process_attach", true)},
		{"process_detach", []api.ValueType{i64}, nil, r.noProcess("process_detach", false)},
		{"process_is_open", []api.ValueType{i64}, []api.ValueType{i32}, r.noProcess("process_is_open", true)},
		{"process_read", []api.ValueType{i64, i64, i32, i32}, []api.ValueType{i32}, r.noProcess("process_read", true)},
		{"process_get_module_address", []api.ValueType{i64, i32, i32}, []api.ValueType{i64}, r.noProcess("process_get_module_address", true)},
		{"process_get_module_size", []api.ValueType{i64, i32, i32}, []api.ValueType{i64}, r.noProcess("process_get_module_size", true)},
	}
}

// instantiateEnv registers the script ABI in rt.
func (r *Runtime) instantiateEnv(ctx context.Context, rt wazero.Runtime) error {
	builder := rt.NewHostModuleBuilder(envModule)
	for _, hf := range r.envFuncs() {
		builder = builder.NewFunctionBuilder().
			WithGoModuleFunction(hf.fn, hf.params, hf.results).
			Export(hf.name)
	}
	if _, err := builder.Instantiate(ctx); err != nil {
		return errors.Wrap(errors.PhaseInstantiate, errors.KindInstantiation, err, "instantiate env module")
	}
	return nil
}

func (r *Runtime) action(fn func()) api.GoModuleFunc {
	return func(context.Context, api.Module, []uint64) {
		fn()
	}
}

func (r *Runtime) timerGetState(_ context.Context, _ api.Module, stack []uint64) {
	stack[0] = api.EncodeI32(r.timer.State().Code())
}

func (r *Runtime) timerSetVariable(_ context.Context, mod api.Module, stack []uint64) {
	key := readString(mod, "timer_set_variable", api.DecodeU32(stack[0]), api.DecodeU32(stack[1]))
	value := readString(mod, "timer_set_variable", api.DecodeU32(stack[2]), api.DecodeU32(stack[3]))
	r.timer.SetVariable(key, value)
}

func (r *Runtime) timerSetGameTime(_ context.Context, _ api.Module, stack []uint64) {
	secs := int64(stack[0])
	nanos := api.DecodeI32(stack[1])
	r.timer.SetGameTime(timeconv.FromSecsNanos(secs, nanos))
}

func (r *Runtime) setTickRate(_ context.Context, _ api.Module, stack []uint64) {
	hz := api.DecodeF64(stack[0])
	d, err := timeconv.FromTicksPerSecond(hz)
	if err != nil {
		panic(errors.New(errors.PhaseHost, errors.KindInvalidInput).
			Func("runtime_set_tick_rate").
			Value(hz).
			Cause(err).
			Build())
	}
	r.tickRate = d
	r.log.Debug("tick rate changed", zap.Float64("ticks_per_second", hz), zap.Duration("interval", d))
}

func (r *Runtime) printMessage(_ context.Context, mod api.Module, stack []uint64) {
	msg := readString(mod, "runtime_print_message", api.DecodeU32(stack[0]), api.DecodeU32(stack[1]))
	r.log.Debug("script message", zap.String("message", msg))
	r.timer.Log(msg)
}

func (r *Runtime) hostInfo(fn, value string) api.GoModuleFunc {
	return func(_ context.Context, mod api.Module, stack []uint64) {
		ok := writeString(mod, fn, api.DecodeU32(stack[0]), api.DecodeU32(stack[1]), value)
		stack[0] = boolResult(ok)
	}
}

func (r *Runtime) addBoolSetting(_ context.Context, mod api.Module, stack []uint64) {
	key := readString(mod, "user_settings_add_bool", api.DecodeU32(stack[0]), api.DecodeU32(stack[1]))
	desc := readString(mod, "user_settings_add_bool", api.DecodeU32(stack[2]), api.DecodeU32(stack[3]))
	setting := settings.UserSetting{
		Kind:        settings.BoolKind{Default: api.DecodeU32(stack[4]) != 0},
		Key:         key,
		Description: desc,
	}
	r.userSettings = append(r.userSettings, setting)
	stack[0] = boolResult(settings.ResolveBool(setting, r.store))
}

func (r *Runtime) addTitleSetting(_ context.Context, mod api.Module, stack []uint64) {
	key := readString(mod, "user_settings_add_title", api.DecodeU32(stack[0]), api.DecodeU32(stack[1]))
	desc := readString(mod, "user_settings_add_title", api.DecodeU32(stack[2]), api.DecodeU32(stack[3]))
	r.userSettings = append(r.userSettings, settings.UserSetting{
		Kind:        settings.TitleKind{HeadingLevel: api.DecodeU32(stack[4])},
		Key:         key,
		Description: desc,
	})
}

func (r *Runtime) setTooltip(_ context.Context, mod api.Module, stack []uint64) {
	key := readString(mod, "user_settings_set_tooltip", api.DecodeU32(stack[0]), api.DecodeU32(stack[1]))
	tooltip := readString(mod, "user_settings_set_tooltip", api.DecodeU32(stack[2]), api.DecodeU32(stack[3]))
	for i := range r.userSettings {
		if r.userSettings[i].Key == key {
			r.userSettings[i].Tooltip = tooltip
			return
		}
	}
	r.log.Warn("tooltip for undeclared setting", zap.String("key", key))
}

// noProcess reports failure for every process call. All process results
// use 0 as the failure value.
func (r *Runtime) noProcess(fn string, hasResult bool) api.GoModuleFunc {
	return func(_ context.Context, _ api.Module, stack []uint64) {
		if !r.processWarned {
			r.processWarned = true
			r.log.Warn("process access is not available", zap.String("func", fn))
		}
		if hasResult {
			stack[0] = 0
		}
	}
}

func boolResult(v bool) uint64 {
	if v {
		return 1
	}
	return 0
}

// osName maps GOOS to the names scripts expect.
func osName(goos string) string {
	if goos == "darwin" {
		return "macos"
	}
	return goos
}

// archName maps GOARCH to the names scripts expect.
func archName(goarch string) string {
	switch goarch {
	case "386":
		return "x86"
	case "amd64":
		return "x86_64"
	case "arm64":
		return "aarch64"
	default:
		return goarch
	}
}
