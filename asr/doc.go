// Package asr runs auto-splitter scripts compiled to core WebAssembly.
//
// A script is instantiated once with a timer.Timer and a settings.Store. At
// instantiation its _initialize export runs, which is where scripts declare
// user settings and pick a tick rate. Afterwards the host calls Update at the
// returned interval; each call runs the script's update export, which may
// drive the timer synchronously.
//
// Scripts import their host functions from the "env" module:
//
//	timer_get_state() -> i32
//	timer_start() / timer_split() / timer_skip_split() / timer_undo_split() / timer_reset()
//	timer_set_variable(key_ptr, key_len, value_ptr, value_len)
//	timer_set_game_time(secs i64, nanos i32)
//	timer_pause_game_time() / timer_resume_game_time()
//	runtime_set_tick_rate(ticks_per_sec f64)
//	runtime_print_message(ptr, len)
//	runtime_get_os(buf_ptr, len_ptr) -> i32
//	runtime_get_arch(buf_ptr, len_ptr) -> i32
//	user_settings_add_bool(key_ptr, key_len, desc_ptr, desc_len, default) -> i32
//	user_settings_add_title(key_ptr, key_len, desc_ptr, desc_len, heading_level)
//	user_settings_set_tooltip(key_ptr, key_len, tooltip_ptr, tooltip_len)
//	process_attach / process_detach / process_is_open / process_read /
//	process_get_module_address / process_get_module_size
//
// Process access is not available in this build; the process functions
// exist so scripts link, and report failure. WASI preview1 is provided
// without filesystem or environment access.
package asr
