package asrtest

import (
	"bytes"
	"context"
	"testing"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

func TestWriterLEB128(t *testing.T) {
	unsigned := []struct {
		encoded []byte
		value   uint32
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x7f}, 127},
		{[]byte{0x80, 0x01}, 128},
		{[]byte{0xe5, 0x8e, 0x26}, 624485},
		{[]byte{0xff, 0xff, 0xff, 0xff, 0x0f}, 0xFFFFFFFF},
	}
	for _, tt := range unsigned {
		var w writer
		w.u32(tt.value)
		if !bytes.Equal(w.bytes(), tt.encoded) {
			t.Errorf("u32(%d) = %x, want %x", tt.value, w.bytes(), tt.encoded)
		}
	}

	signed := []struct {
		encoded []byte
		value   int64
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x7f}, -1},
		{[]byte{0x3f}, 63},
		{[]byte{0xc0, 0x00}, 64},
		{[]byte{0x40}, -64},
		{[]byte{0x80, 0x7f}, -128},
	}
	for _, tt := range signed {
		var w writer
		w.s64(tt.value)
		if !bytes.Equal(w.bytes(), tt.encoded) {
			t.Errorf("s64(%d) = %x, want %x", tt.value, w.bytes(), tt.encoded)
		}
	}
}

func TestScript_Compiles(t *testing.T) {
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx)

	s := New()
	s.Init(
		s.SetTickRate(60),
		s.AddBool("start", "Start automatically", true),
		s.AddTitle("section", "Splits", 0),
		s.SetTooltip("start", "Starts the timer on the title screen"),
	)
	s.Update(
		WhenState(0, Call("timer_start")),
		s.Once(s.PrintMessage("first tick")),
		s.AfterFirst(Call("timer_split")),
		SetGameTime(12, 500),
		s.SetVariable("room", "hub"),
		s.EchoOS(32),
	)

	compiled, err := r.CompileModule(ctx, s.Bytes())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	exports := compiled.ExportedFunctions()
	for _, name := range []string{"_initialize", "update"} {
		if _, ok := exports[name]; !ok {
			t.Errorf("missing export %q", name)
		}
	}
	if _, ok := compiled.ExportedMemories()["memory"]; !ok {
		t.Error("missing memory export")
	}

	imported := make(map[string]bool)
	for _, f := range compiled.ImportedFunctions() {
		module, name, _ := f.Import()
		if module != EnvModule {
			t.Errorf("unexpected import module %q", module)
		}
		imported[name] = true
	}
	for _, name := range []string{
		"runtime_set_tick_rate", "user_settings_add_bool", "user_settings_add_title",
		"user_settings_set_tooltip", "timer_get_state", "timer_start", "timer_split",
		"runtime_print_message", "timer_set_game_time", "timer_set_variable", "runtime_get_os",
	} {
		if !imported[name] {
			t.Errorf("missing import %q", name)
		}
	}
}

func TestEnv_SignaturesEncode(t *testing.T) {
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx)

	s := New()
	for _, name := range []string{"timer_set_game_time", "runtime_set_tick_rate", "process_read", "process_attach"} {
		s.Import(EnvModule, name, Env[name])
	}
	s.Update(I64(1), I32(2), Call("timer_set_game_time"), F64(60), Call("runtime_set_tick_rate"))
	compiled, err := r.CompileModule(ctx, s.Bytes())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	for _, f := range compiled.ImportedFunctions() {
		_, name, _ := f.Import()
		want := Env[name]
		if !sameTypes(f.ParamTypes(), want.Params) || !sameTypes(f.ResultTypes(), want.Results) {
			t.Errorf("%s: got %v -> %v, want %v", name, f.ParamTypes(), f.ResultTypes(), want)
		}
	}
}

func sameTypes(got []api.ValueType, want []ValType) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if byte(got[i]) != byte(want[i]) {
			return false
		}
	}
	return true
}

func TestScript_ImportsAreDeduplicated(t *testing.T) {
	s := New()
	s.Update(Call("timer_split"), Call("timer_split"), Call("timer_split"))
	s.Bytes()
	if len(s.imports) != 1 {
		t.Fatalf("imports = %d, want 1", len(s.imports))
	}
}

func TestScript_CustomImport(t *testing.T) {
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx)

	s := New()
	s.Update(CallImport("env", "no_such_function", Sig{Params: []ValType{TypeI32}}))

	// The call has no argument, so validation must fail. Fix the body and
	// compile again to check the import itself encodes.
	if _, err := r.CompileModule(ctx, s.Bytes()); err == nil {
		t.Fatal("expected validation error for missing operand")
	}

	s = New()
	s.Update(I32(7), CallImport("env", "no_such_function", Sig{Params: []ValType{TypeI32}}))
	compiled, err := r.CompileModule(ctx, s.Bytes())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if n := len(compiled.ImportedFunctions()); n != 1 {
		t.Fatalf("imports = %d, want 1", n)
	}
}

func TestCall_UnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Call("timer_explode")
}
