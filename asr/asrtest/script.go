// Package asrtest builds small auto-splitter scripts as core WebAssembly
// binaries so engine and boundary tests need no checked-in fixtures.
//
// A Script has one exported memory page, an optional _initialize function
// and an optional update function. Bodies are sequences of Op values:
//
//	s := asrtest.New()
//	s.Init(s.SetTickRate(60), s.AddBool("split_start", "Split on start", true))
//	s.Update(asrtest.Call("timer_start"))
//	wasm := s.Bytes()
package asrtest

import (
	"fmt"
	"slices"
)

// ValType is a WebAssembly value type.
type ValType byte

const (
	TypeI32 ValType = 0x7f
	TypeI64 ValType = 0x7e
	TypeF32 ValType = 0x7d
	TypeF64 ValType = 0x7c
)

// Sig is a function signature.
type Sig struct {
	Params  []ValType
	Results []ValType
}

func sig(params []ValType, results ...ValType) Sig {
	return Sig{Params: params, Results: results}
}

func (s Sig) key() string {
	return fmt.Sprintf("%x>%x", s.Params, s.Results)
}

// EnvModule is the import module of the script ABI.
const EnvModule = "env"

// Env lists every host function the engine provides under EnvModule.
var Env = map[string]Sig{
	"timer_get_state":        sig(nil, TypeI32),
	"timer_start":            sig(nil),
	"timer_split":            sig(nil),
	"timer_skip_split":       sig(nil),
	"timer_undo_split":       sig(nil),
	"timer_reset":            sig(nil),
	"timer_set_variable":     sig([]ValType{TypeI32, TypeI32, TypeI32, TypeI32}),
	"timer_set_game_time":    sig([]ValType{TypeI64, TypeI32}),
	"timer_pause_game_time":  sig(nil),
	"timer_resume_game_time": sig(nil),

	"runtime_set_tick_rate":     sig([]ValType{TypeF64}),
	"runtime_print_message":     sig([]ValType{TypeI32, TypeI32}),
	"runtime_get_os":            sig([]ValType{TypeI32, TypeI32}, TypeI32),
	"runtime_get_arch":          sig([]ValType{TypeI32, TypeI32}, TypeI32),
	"user_settings_add_bool":    sig([]ValType{TypeI32, TypeI32, TypeI32, TypeI32, TypeI32}, TypeI32),
	"user_settings_add_title":   sig([]ValType{TypeI32, TypeI32, TypeI32, TypeI32, TypeI32}),
	"user_settings_set_tooltip": sig([]ValType{TypeI32, TypeI32, TypeI32, TypeI32}),

	"process_attach":             sig([]ValType{TypeI32, TypeI32}, TypeI64),
	"process_detach":             sig([]ValType{TypeI64}),
	"process_is_open":            sig([]ValType{TypeI64}, TypeI32),
	"process_read":               sig([]ValType{TypeI64, TypeI64, TypeI32, TypeI32}, TypeI32),
	"process_get_module_address": sig([]ValType{TypeI64, TypeI32, TypeI32}, TypeI64),
	"process_get_module_size":    sig([]ValType{TypeI64, TypeI32, TypeI32}, TypeI64),
}

// dataStart leaves the low addresses free for scratch use by tests.
const dataStart = 1024

type importEntry struct {
	module, name string
	sig          Sig
}

type funcEntry struct {
	export string
	body   []Op
}

type segment struct {
	offset uint32
	data   []byte
}

// Script is a WebAssembly module under construction.
type Script struct {
	imports   []importEntry
	importIdx map[string]uint32
	funcs     []funcEntry
	data      []segment
	dataEnd   uint32
	noMemory  bool
}

// New returns an empty script.
func New() *Script {
	return &Script{
		importIdx: make(map[string]uint32),
		dataEnd:   dataStart,
	}
}

// Import declares a function import and returns its function index.
// Declaring the same import twice returns the first index.
func (s *Script) Import(module, name string, sig Sig) uint32 {
	key := module + "#" + name
	if idx, ok := s.importIdx[key]; ok {
		return idx
	}
	idx := uint32(len(s.imports))
	s.imports = append(s.imports, importEntry{module: module, name: name, sig: sig})
	s.importIdx[key] = idx
	return idx
}

// Alloc reserves n bytes of zeroed memory and returns the address.
func (s *Script) Alloc(n uint32) uint32 {
	addr := (s.dataEnd + 7) &^ 7
	s.dataEnd = addr + n
	return addr
}

// Data places b in memory and returns its address and length.
func (s *Script) Data(b []byte) (ptr, n uint32) {
	ptr = s.Alloc(uint32(len(b)))
	s.data = append(s.data, segment{offset: ptr, data: slices.Clone(b)})
	return ptr, uint32(len(b))
}

// String places v in memory and returns its address and length.
func (s *Script) String(v string) (ptr, n uint32) {
	return s.Data([]byte(v))
}

// Func adds a () -> () function exported as name.
func (s *Script) Func(name string, body ...Op) {
	s.funcs = append(s.funcs, funcEntry{export: name, body: body})
}

// Init sets the body of _initialize.
func (s *Script) Init(body ...Op) {
	s.Func("_initialize", body...)
}

// Update sets the body of update.
func (s *Script) Update(body ...Op) {
	s.Func("update", body...)
}

// WithoutMemory omits the memory so host calls that touch guest memory fail.
func (s *Script) WithoutMemory() *Script {
	s.noMemory = true
	return s
}

// Bytes encodes the module.
func (s *Script) Bytes() []byte {
	// Ops may declare imports. Run them once so import indices are final
	// before function indices are assigned.
	for _, f := range s.funcs {
		var scratch writer
		for _, op := range f.body {
			op(s, &scratch)
		}
	}

	var types []Sig
	typeIdx := make(map[string]uint32)
	typeOf := func(sg Sig) uint32 {
		if idx, ok := typeIdx[sg.key()]; ok {
			return idx
		}
		idx := uint32(len(types))
		types = append(types, sg)
		typeIdx[sg.key()] = idx
		return idx
	}
	importTypes := make([]uint32, len(s.imports))
	for i, imp := range s.imports {
		importTypes[i] = typeOf(imp.sig)
	}
	voidType := typeOf(Sig{})

	var out writer
	out.u32le(0x6d736100) // \0asm
	out.u32le(1)

	var sec writer
	sec.u32(uint32(len(types)))
	for _, t := range types {
		sec.byte(0x60)
		sec.u32(uint32(len(t.Params)))
		for _, p := range t.Params {
			sec.byte(byte(p))
		}
		sec.u32(uint32(len(t.Results)))
		for _, r := range t.Results {
			sec.byte(byte(r))
		}
	}
	out.section(1, &sec)

	if len(s.imports) > 0 {
		sec = writer{}
		sec.u32(uint32(len(s.imports)))
		for i, imp := range s.imports {
			sec.name(imp.module)
			sec.name(imp.name)
			sec.byte(0x00)
			sec.u32(importTypes[i])
		}
		out.section(2, &sec)
	}

	if len(s.funcs) > 0 {
		sec = writer{}
		sec.u32(uint32(len(s.funcs)))
		for range s.funcs {
			sec.u32(voidType)
		}
		out.section(3, &sec)
	}

	if !s.noMemory {
		sec = writer{}
		sec.u32(1)
		sec.byte(0x00)
		sec.u32(1)
		out.section(5, &sec)
	}

	sec = writer{}
	exports := len(s.funcs)
	if !s.noMemory {
		exports++
	}
	sec.u32(uint32(exports))
	if !s.noMemory {
		sec.name("memory")
		sec.byte(0x02)
		sec.u32(0)
	}
	for i, f := range s.funcs {
		sec.name(f.export)
		sec.byte(0x00)
		sec.u32(uint32(len(s.imports) + i))
	}
	out.section(7, &sec)

	if len(s.funcs) > 0 {
		sec = writer{}
		sec.u32(uint32(len(s.funcs)))
		for _, f := range s.funcs {
			var body writer
			body.u32(0) // no locals
			for _, op := range f.body {
				op(s, &body)
			}
			body.byte(0x0b)
			sec.u32(uint32(len(body.bytes())))
			sec.byte(body.bytes()...)
		}
		out.section(10, &sec)
	}

	if len(s.data) > 0 && !s.noMemory {
		sec = writer{}
		sec.u32(uint32(len(s.data)))
		for _, d := range s.data {
			sec.u32(0) // active, memory 0
			sec.byte(0x41)
			sec.s64(int64(int32(d.offset)))
			sec.byte(0x0b)
			sec.u32(uint32(len(d.data)))
			sec.byte(d.data...)
		}
		out.section(11, &sec)
	}

	return out.bytes()
}
