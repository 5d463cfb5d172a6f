/*
Package xlog provides a Logger interface and supporting functions to
switch debug output of the decoder packages on and off.

The decoders only log cold events: the fall back from the speculative
fast path to the checked path, the refills from the tail bytes of a
partition and reaching the end of the stream. The hot path never calls
into this package, so a nil Logger costs nothing but a nil check on
those rare events.

The Logger interface is supported by the log.Logger type. If the Logger
interface is nil, the functions don't do anything and no formatting
takes place.
*/
package xlog

import "fmt"

// Logger must be supported by the logger passed to the functions of
// this package. The log.Logger type supports this interface.
type Logger interface {
	Output(calldepth int, s string) error
}

// Print outputs the arguments using the logger. If the logger is nil
// nothing will be printed.
func Print(l Logger, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprint(v...))
	}
}

// Printf prints the arguments using the format string. If the logger
// argument is nil nothing will be printed.
func Printf(l Logger, format string, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprintf(format, v...))
	}
}

// Println prints the arguments and adds a newline. If the logger
// argument is nil nothing will be printed.
func Println(l Logger, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprintln(v...))
	}
}

// prefixed adds a fixed prefix to every line written to the wrapped
// logger.
type prefixed struct {
	l      Logger
	prefix string
}

func (p prefixed) Output(calldepth int, s string) error {
	return p.l.Output(calldepth+1, p.prefix+s)
}

// WithPrefix returns a logger that puts prefix in front of every
// message. A nil logger stays nil, so the result can be used in place
// of l without further checks.
func WithPrefix(l Logger, prefix string) Logger {
	if l == nil {
		return nil
	}
	return prefixed{l: l, prefix: prefix}
}
