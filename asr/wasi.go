package asr

import (
	"context"
	"io"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/asr-runtime/errors"
)

// instantiateWASI provides WASI preview1 so scripts built for wasm32-wasi
// link. Filesystem and environment stay empty; see moduleConfig.
func instantiateWASI(ctx context.Context, rt wazero.Runtime) error {
	builder := rt.NewHostModuleBuilder(wasi_snapshot_preview1.ModuleName)
	wasi_snapshot_preview1.NewFunctionExporter().ExportFunctions(builder)
	if _, err := builder.Instantiate(ctx); err != nil {
		return errors.Wrap(errors.PhaseInstantiate, errors.KindInstantiation, err, "instantiate WASI")
	}
	return nil
}

// moduleConfig routes script stdout and stderr to log and runs the reactor
// initializer.
func moduleConfig(log *zap.Logger) wazero.ModuleConfig {
	return wazero.NewModuleConfig().
		WithName("script").
		WithStartFunctions("_initialize").
		WithStdout(streamWriter(log, "stdout", zapcore.DebugLevel)).
		WithStderr(streamWriter(log, "stderr", zapcore.WarnLevel)).
		WithSysWalltime().
		WithSysNanotime()
}

// streamWriter returns a writer that logs each write as one entry.
func streamWriter(log *zap.Logger, stream string, level zapcore.Level) io.Writer {
	std, err := zap.NewStdLogAt(log.With(zap.String("stream", stream)), level)
	if err != nil {
		return io.Discard
	}
	return std.Writer()
}
