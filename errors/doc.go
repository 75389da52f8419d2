// Package errors provides structured error types for the auto-splitting
// runtime and its foreign boundary.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type carries the host function or export involved and
// a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseHost, errors.KindInvalidInput).
//		Func("runtime_set_tick_rate").
//		Value(rate).
//		Detail("tick rate must be positive").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.MissingExport("update")
//	err := errors.MemoryOutOfBounds("runtime_print_message", ptr, n)
//
// All errors implement the standard error interface and support errors.Is/As.
// errors.Is matches an *Error by phase and kind only.
package errors
