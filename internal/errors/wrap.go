package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// Wrap annotates err with a message and optional slog attributes. The
// resulting error unwraps to err so that sentinel checks keep working.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	var pcs [1]uintptr
	// Skip runtime.Callers and this function.
	runtime.Callers(2, pcs[:])
	annotated := AnnotatedError{
		msg:   msg,
		pc:    pcs[0],
		attrs: attrs,
	}
	return fmt.Errorf("%w: %w", annotated, err)
}

// SlogError formats err as a slog attribute for logging.
func SlogError(err error) slog.Attr {
	return slog.Any("error", err)
}

// Join exposes stdlib errors.Join.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
