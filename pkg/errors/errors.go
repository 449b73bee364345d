// Package errors provides structured error reporting for clockface.
//
// Widgets never return errors to their host: the only inputs they see are the
// system clock and their own bounds. Failures that can still happen (font
// initialization, a panicking posted callback, a bad config file) are wrapped
// in a [DriftError] and sent to the global [ErrorHandler].
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindInit indicates an initialization error (fonts, audio, screens).
	KindInit
	// KindRender indicates a painting or rasterization error.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindConfig indicates an invalid configuration value.
	KindConfig
	// KindDispatch indicates a UI-thread dispatch failure.
	KindDispatch
)

func (k ErrorKind) String() string {
	switch k {
	case KindInit:
		return "init"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	case KindConfig:
		return "config"
	case KindDispatch:
		return "dispatch"
	default:
		return "unknown"
	}
}

// DriftError represents a structured error.
type DriftError struct {
	// Op is the operation that failed (e.g., "graphics.DefaultFontManager").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *DriftError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *DriftError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "engine.Looper.RunPending").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ConfigError describes a configuration value that could not be used.
type ConfigError struct {
	// Key is the dotted path of the offending value (e.g., "clock.colors.numbers").
	Key string
	// Value is the raw value found in the configuration.
	Value string
	// Reason explains why the value was rejected.
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("%s=%q: %s", e.Key, e.Value, e.Reason)
}

// ErrorHandler receives reported errors.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *DriftError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
