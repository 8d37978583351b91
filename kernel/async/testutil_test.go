package async

import "mos/kernel/kerrors"

// installTestFatalHandler swaps in a fatal handler that records the kind of
// each fatal error (the latest one wins) instead of panicking, and returns a func that
// restores the default panicking handler. kerrors.fatalHandler is
// process-wide, so callers must defer the restore.
func installTestFatalHandler(kind *any) func() {
	kerrors.SetFatalHandler(func(err *kerrors.Error) {
		*kind = err.Kind
	})
	return func() { kerrors.SetFatalHandler(nil) }
}
