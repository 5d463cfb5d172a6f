package arith

import (
	"io"
	"log"

	"github.com/ulikunitz/vp8/xlog"
)

// debug stores a reference to a logger. It may contain nil for no output.
var debug xlog.Logger

// SetLogger sets the logger for debug output of the package. The logger
// only receives cold events: the fall back to the checked path, refills
// from the tail bytes and reaching the end of the stream. A nil logger
// switches the output off.
func SetLogger(l xlog.Logger) {
	debug = xlog.WithPrefix(l, "arith: ")
}

// debugOn uses the log.Logger type to write information on the given writer.
// If w is nil no output will be written.
func debugOn(w io.Writer) {
	if w == nil {
		debug = nil
		return
	}
	SetLogger(log.New(w, "", 0))
}

// debugOff switches the debugging output off.
func debugOff() { debug = nil }
