package asrtest

import "fmt"

// Op appends instructions to a function body.
type Op func(s *Script, w *writer)

// Seq groups ops into one.
func Seq(ops ...Op) Op {
	return func(s *Script, w *writer) {
		for _, op := range ops {
			op(s, w)
		}
	}
}

// Raw emits literal instruction bytes.
func Raw(code ...byte) Op {
	return func(_ *Script, w *writer) { w.byte(code...) }
}

func I32(v int32) Op {
	return func(_ *Script, w *writer) {
		w.byte(0x41)
		w.s64(int64(v))
	}
}

func I64(v int64) Op {
	return func(_ *Script, w *writer) {
		w.byte(0x42)
		w.s64(v)
	}
}

func F64(v float64) Op {
	return func(_ *Script, w *writer) {
		w.byte(0x44)
		w.f64(v)
	}
}

// Ptr pushes an address as i32.
func Ptr(addr uint32) Op {
	return I32(int32(addr))
}

func Drop() Op        { return Raw(0x1a) }
func Unreachable() Op { return Raw(0x00) }
func Eq() Op          { return Raw(0x46) }
func Eqz() Op         { return Raw(0x45) }

// Load pushes the i32 stored at addr.
func Load(addr uint32) Op {
	return Seq(Ptr(addr), Raw(0x28, 0x02, 0x00))
}

// Store writes the i32 produced by value to addr.
func Store(addr uint32, value Op) Op {
	return Seq(Ptr(addr), value, Raw(0x36, 0x02, 0x00))
}

// If runs then when cond leaves a non-zero i32.
func If(cond Op, then ...Op) Op {
	return Seq(cond, Raw(0x04, 0x40), Seq(then...), Raw(0x0b))
}

// Call calls a host function of the script ABI. It panics for names not in
// Env.
func Call(name string) Op {
	sg, ok := Env[name]
	if !ok {
		panic(fmt.Sprintf("asrtest: %q is not part of the script ABI", name))
	}
	return CallImport(EnvModule, name, sg)
}

// CallImport calls an arbitrary imported function, declaring it on first use.
func CallImport(module, name string, sg Sig) Op {
	return func(s *Script, w *writer) {
		idx := s.Import(module, name, sg)
		w.byte(0x10)
		w.u32(idx)
	}
}

// Once runs ops on the first invocation of the enclosing function only.
func (s *Script) Once(ops ...Op) Op {
	flag := s.Alloc(4)
	return If(Seq(Load(flag), Eqz()), Seq(ops...), Store(flag, I32(1)))
}

// AfterFirst runs ops on every invocation except the first.
func (s *Script) AfterFirst(ops ...Op) Op {
	flag := s.Alloc(4)
	return Seq(
		If(Load(flag), ops...),
		Store(flag, I32(1)),
	)
}

// SetTickRate calls runtime_set_tick_rate.
func (s *Script) SetTickRate(hz float64) Op {
	return Seq(F64(hz), Call("runtime_set_tick_rate"))
}

// PrintMessage calls runtime_print_message with msg.
func (s *Script) PrintMessage(msg string) Op {
	p, n := s.String(msg)
	return Seq(Ptr(p), Ptr(n), Call("runtime_print_message"))
}

// AddBool declares a boolean setting and discards the effective value.
func (s *Script) AddBool(key, description string, def bool) Op {
	return Seq(s.AddBoolValue(key, description, def), Drop())
}

// AddBoolValue declares a boolean setting and leaves the effective value on
// the stack.
func (s *Script) AddBoolValue(key, description string, def bool) Op {
	kp, kl := s.String(key)
	dp, dl := s.String(description)
	d := int32(0)
	if def {
		d = 1
	}
	return Seq(Ptr(kp), Ptr(kl), Ptr(dp), Ptr(dl), I32(d), Call("user_settings_add_bool"))
}

// AddTitle declares a title setting.
func (s *Script) AddTitle(key, description string, level uint32) Op {
	kp, kl := s.String(key)
	dp, dl := s.String(description)
	return Seq(Ptr(kp), Ptr(kl), Ptr(dp), Ptr(dl), Ptr(level), Call("user_settings_add_title"))
}

// SetTooltip attaches a tooltip to a declared setting.
func (s *Script) SetTooltip(key, tooltip string) Op {
	kp, kl := s.String(key)
	tp, tl := s.String(tooltip)
	return Seq(Ptr(kp), Ptr(kl), Ptr(tp), Ptr(tl), Call("user_settings_set_tooltip"))
}

// SetVariable calls timer_set_variable.
func (s *Script) SetVariable(key, value string) Op {
	kp, kl := s.String(key)
	vp, vl := s.String(value)
	return Seq(Ptr(kp), Ptr(kl), Ptr(vp), Ptr(vl), Call("timer_set_variable"))
}

// SetGameTime calls timer_set_game_time.
func SetGameTime(secs int64, nanos int32) Op {
	return Seq(I64(secs), I32(nanos), Call("timer_set_game_time"))
}

// WhenState runs ops when the timer reports state code.
func WhenState(code int32, ops ...Op) Op {
	return If(Seq(Call("timer_get_state"), I32(code), Eq()), ops...)
}

// EchoOS queries runtime_get_os with a buffer of size bytes and prints the
// result. Nothing is printed when the buffer is too small.
func (s *Script) EchoOS(size uint32) Op {
	return s.echo("runtime_get_os", size)
}

// EchoArch is EchoOS for runtime_get_arch.
func (s *Script) EchoArch(size uint32) Op {
	return s.echo("runtime_get_arch", size)
}

func (s *Script) echo(fn string, size uint32) Op {
	lenPtr := s.Alloc(4)
	buf := s.Alloc(size)
	return Seq(
		Store(lenPtr, Ptr(size)),
		If(Seq(Ptr(buf), Ptr(lenPtr), Call(fn)),
			Ptr(buf), Load(lenPtr), Call("runtime_print_message"),
		),
	)
}
