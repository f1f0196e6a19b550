// Package warnfilter controls which test-support warnings are emitted.
//
// Warnings are identified by their call site (file and line, captured via
// runtime.Caller) and deduplicated according to the installed action,
// mirroring the usual warning-control semantics: "default" shows the
// first occurrence per call site, "once" the first per message, "module"
// the first per file, "always" every occurrence, "ignore" none, and
// "error" hands the warning back to the caller as an error.
//
// The package-level functions mutate a process-wide default filter
// (last writer wins, per the normalization routine's contract); suites
// that run in parallel should carry their own Filter instead.
package warnfilter

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/spaolacci/murmur3"
)

// Action selects the dedupe behavior for emitted warnings.
type Action string

const (
	// Default emits the first occurrence per call site (file and line).
	Default Action = "default"
	// Always emits every warning.
	Always Action = "always"
	// Ignore suppresses all warnings.
	Ignore Action = "ignore"
	// Once emits the first occurrence of each distinct message.
	Once Action = "once"
	// Module emits the first occurrence per source file.
	Module Action = "module"
	// Error returns the warning to the caller as an error instead of
	// logging it.
	Error Action = "error"
)

// ErrWarning is the sentinel wrapped by warnings under the Error action.
var ErrWarning = errors.New("warning treated as error")

// Filter is an isolated warning filter. Use New; the zero value is not
// usable.
type Filter struct {
	mu     sync.Mutex
	action Action
	seen   map[uint64]struct{}
	logger *slog.Logger
}

// New returns a Filter with the given action, logging through a text
// handler on stderr.
func New(action Action) *Filter {
	return &Filter{
		action: action,
		seen:   make(map[uint64]struct{}),
		logger: slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}
}

// SetLogger replaces the filter's logger.
func (f *Filter) SetLogger(l *slog.Logger) {
	f.mu.Lock()
	f.logger = l
	f.mu.Unlock()
}

// Simple resets the seen-registry and installs action, like re-running
// filter setup from scratch.
func (f *Filter) Simple(action Action) {
	f.mu.Lock()
	f.action = action
	f.seen = make(map[uint64]struct{})
	f.mu.Unlock()
}

// Action returns the currently installed action.
func (f *Filter) Action() Action {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.action
}

// Warn emits msg subject to the filter. Under the Error action it
// returns the warning wrapped around ErrWarning; otherwise it returns
// nil whether or not the warning was shown.
func (f *Filter) Warn(msg string) error {
	return f.emit(msg, 2)
}

// Warnf is Warn with fmt.Sprintf formatting.
func (f *Filter) Warnf(format string, args ...any) error {
	return f.emit(fmt.Sprintf(format, args...), 2)
}

func (f *Filter) emit(msg string, skip int) error {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		file, line = "unknown", 0
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.action {
	case Ignore:
		return nil
	case Error:
		return fmt.Errorf("%w: %s", ErrWarning, msg)
	case Always:
		// no dedupe
	default:
		key := dedupeKey(f.action, file, line, msg)
		if _, dup := f.seen[key]; dup {
			return nil
		}
		f.seen[key] = struct{}{}
	}

	f.logger.Warn(msg, "file", filepath.Base(file), "line", line)
	return nil
}

func dedupeKey(action Action, file string, line int, msg string) uint64 {
	switch action {
	case Once:
		return murmur3.Sum64([]byte(msg))
	case Module:
		return murmur3.Sum64([]byte(file))
	default:
		// Default: call-site identity.
		return murmur3.Sum64(fmt.Appendf(nil, "%s:%d:%s", file, line, msg))
	}
}

var def = New(Default)

// SimpleFilter resets the process-wide filter to action, clearing its
// seen-registry.
func SimpleFilter(action Action) { def.Simple(action) }

// SetLogger replaces the process-wide filter's logger.
func SetLogger(l *slog.Logger) { def.SetLogger(l) }

// CurrentAction returns the process-wide filter's action.
func CurrentAction() Action { return def.Action() }

// Warn emits msg through the process-wide filter.
func Warn(msg string) error { return def.emit(msg, 2) }

// Warnf is Warn with formatting.
func Warnf(format string, args ...any) error {
	return def.emit(fmt.Sprintf(format, args...), 2)
}
