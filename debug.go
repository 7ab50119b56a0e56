package scrollwork

import (
	"fmt"
	"io"
	"os"
	"time"
)

// logOutput receives warning lines and debug stats.
var logOutput io.Writer = os.Stderr

// SetLogOutput redirects scrollwork's log lines. Passing nil restores stderr.
func SetLogOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	logOutput = w
}

// warnf prints a warning line. Warnings are printed regardless of debug mode.
func warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(logOutput, "[scrollwork] warning: "+format+"\n", args...)
}

// debugf prints a line only in debug mode.
func debugf(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(logOutput, "[scrollwork] "+format+"\n", args...)
}

// globalDebug mirrors the most recently set Scene debug flag so that element
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool

// frameStats holds per-frame timing and binding metrics.
// Only populated when debug mode is on.
type frameStats struct {
	readTime  time.Duration
	writeTime time.Duration
	bindings  int
	writes    int
	token     InvalidationToken
}

// debugLog prints frame stats.
func (c *Choreographer) debugLog(stats frameStats) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(logOutput,
		"[scrollwork] read: %v | write: %v | bindings: %d | writes: %d | token: %d\n",
		stats.readTime, stats.writeTime, stats.bindings, stats.writes, stats.token)
}

// debugCheckDisposed panics with a descriptive message when a disposed
// element is used in a tree operation. Only called in debug mode.
func debugCheckDisposed(e *Element, op string) {
	if e.disposed {
		panic(fmt.Sprintf("scrollwork debug: %s on disposed element %q", op, e.Name))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(e *Element) {
	depth := 0
	for p := e; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		warnf("tree depth %d exceeds %d (element %q)", depth, debugMaxTreeDepth, e.Name)
	}
}

// debugCheckChildCount warns if an element has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(e *Element) {
	if len(e.children) > debugMaxChildCount {
		warnf("element %q has %d children (threshold %d)", e.Name, len(e.children), debugMaxChildCount)
	}
}
