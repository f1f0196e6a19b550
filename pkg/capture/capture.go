// Package capture temporarily redirects the process's stdout and stderr
// into in-memory buffers so tests can inspect printed output.
//
// Redirection swaps the os.Stdout and os.Stderr file handles, so output
// from fmt and anything else that resolves the handles at write time lands
// in the buffers. Writers that bound the handle before the scope started
// (the stdlib log default logger binds os.Stderr at init) keep writing to
// the real streams. The previous handles are always restored when the
// scope ends, including when the enclosed code panics.
//
// Only one scope may be active per process; a package-level lock
// serializes callers (the handles are process-wide state).
package capture

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
)

var mu sync.Mutex

// Scope is an active stdout/stderr redirection. Obtain one with Start and
// always end it with Stop, typically via defer.
type Scope struct {
	oldOut, oldErr *os.File
	outW, errW     *os.File

	outBuf, errBuf bytes.Buffer
	outDone        chan struct{}
	errDone        chan struct{}

	stopped bool
}

// Start redirects os.Stdout and os.Stderr into the returned scope's
// buffers. It blocks if another scope is already active. The only error
// path is pipe creation failing (fd exhaustion).
func Start() (*Scope, error) {
	mu.Lock()

	outR, outW, err := os.Pipe()
	if err != nil {
		mu.Unlock()
		return nil, fmt.Errorf("capture: creating stdout pipe: %w", err)
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		outR.Close()
		outW.Close()
		mu.Unlock()
		return nil, fmt.Errorf("capture: creating stderr pipe: %w", err)
	}

	s := &Scope{
		oldOut:  os.Stdout,
		oldErr:  os.Stderr,
		outW:    outW,
		errW:    errW,
		outDone: make(chan struct{}),
		errDone: make(chan struct{}),
	}

	go drain(&s.outBuf, outR, s.outDone)
	go drain(&s.errBuf, errR, s.errDone)

	os.Stdout = outW
	os.Stderr = errW
	return s, nil
}

func drain(buf *bytes.Buffer, r *os.File, done chan struct{}) {
	defer close(done)
	defer r.Close()
	io.Copy(buf, r) //nolint:errcheck // a broken pipe just ends the capture
}

// Stop restores the previous stdout/stderr handles and returns everything
// written while the scope was active. Safe to call more than once; later
// calls return the same contents.
func (s *Scope) Stop() (stdout, stderr string) {
	if s.stopped {
		return s.outBuf.String(), s.errBuf.String()
	}
	s.stopped = true

	os.Stdout = s.oldOut
	os.Stderr = s.oldErr

	// Closing the write ends lets the drain goroutines see EOF and
	// finish flushing into the buffers.
	s.outW.Close()
	s.errW.Close()
	<-s.outDone
	<-s.errDone

	mu.Unlock()
	return s.outBuf.String(), s.errBuf.String()
}

// Capture runs fn with stdout and stderr redirected, returning the
// captured text and fn's error. The previous handles are restored before
// Capture returns, even when fn panics (the panic is re-raised after
// restoration).
func Capture(fn func() error) (stdout, stderr string, err error) {
	s, serr := Start()
	if serr != nil {
		return "", "", serr
	}
	defer func() {
		stdout, stderr = s.Stop()
	}()
	err = fn()
	return stdout, stderr, err
}
