// Package console is the process-wide diagnostic output channel.
package console

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Console writes leveled diagnostic lines. The zero value is not usable, use New.
type Console struct {
	mu sync.Mutex

	// DebugLevel enables Debug output when greater than zero.
	DebugLevel int
	// Quiet suppresses everything except Error and Exception.
	Quiet bool

	out *log.Logger
}

// Logger is the shared console used by the command line and the language server.
var Logger = New(os.Stderr)

// New creates a console writing to w.
func New(w io.Writer) *Console {
	return &Console{out: log.New(w, "", log.LstdFlags)}
}

// SetOutput redirects the console.
func (c *Console) SetOutput(w io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.out.SetOutput(w)
}

// Printf makes the console usable wherever a Debugger is expected.
func (c *Console) Printf(format string, v ...interface{}) {
	if c.Quiet {
		return
	}
	c.write("", format, v...)
}

// Debug logs only when DebugLevel is set.
func (c *Console) Debug(format string, v ...interface{}) {
	if c.DebugLevel < 1 || c.Quiet {
		return
	}
	c.write("DEBUG ", format, v...)
}

// Info logs a regular progress line.
func (c *Console) Info(format string, v ...interface{}) {
	if c.Quiet {
		return
	}
	c.write("INFO ", format, v...)
}

// Error logs regardless of Quiet.
func (c *Console) Error(format string, v ...interface{}) {
	c.write("ERROR ", format, v...)
}

// Exception logs a message together with the error that caused it.
func (c *Console) Exception(msg string, err error) {
	c.write("ERROR ", "%s: %v", msg, err)
}

func (c *Console) write(level, format string, v ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.out.Output(3, level+fmt.Sprintf(format, v...))
}

type debugPrinter struct {
	c *Console
}

func (d debugPrinter) Printf(format string, v ...interface{}) {
	d.c.Debug(format, v...)
}

// Debugger adapts the console to Printf callers whose output is only
// interesting with debugging enabled.
func (c *Console) Debugger() interface {
	Printf(format string, v ...interface{})
} {
	return debugPrinter{c: c}
}

type errorPrinter struct {
	c *Console
}

func (e errorPrinter) Printf(format string, v ...interface{}) {
	e.c.Error(format, v...)
}

// Errors adapts the console to Printf callers reporting failures that must
// be seen even when Quiet is set.
func (c *Console) Errors() interface {
	Printf(format string, v ...interface{})
} {
	return errorPrinter{c: c}
}
