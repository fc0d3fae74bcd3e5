// Package intake funnels every event source on the terminal (scanner wedge,
// POS poller, local API) into one queue so the verification engine sees a
// single serialized stream.
package intake

import (
	"bufio"
	"context"
	"io"
	"time"
)

const (
	// wedgeGap separates scanner bursts from human typing: a scanner delivers
	// keystrokes within a few milliseconds of each other, a human does not.
	wedgeGap = 100 * time.Millisecond

	// wedgeMinScan is the minimum buffered length for an Enter keystroke to
	// count as a completed scan. Shorter bursts are ordinary keyboard input.
	wedgeMinScan = 20

	// wedgeMaxBuffer caps runaway buffers from devices that never send Enter.
	wedgeMaxBuffer = 1000
)

// Wedge reassembles scanner payloads from a keyboard-wedge keystroke stream.
// It is a pure state machine: callers feed keystrokes with their arrival
// times and collect completed payloads. Not safe for concurrent use; each
// input device gets its own Wedge.
type Wedge struct {
	buf     []rune
	lastKey time.Time
}

// NewWedge creates an empty wedge buffer.
func NewWedge() *Wedge {
	return &Wedge{}
}

// Key consumes one keystroke. It returns a completed payload and true when
// the keystroke finishes a scan, otherwise "" and false.
func (w *Wedge) Key(r rune, at time.Time) (string, bool) {
	if !w.lastKey.IsZero() && at.Sub(w.lastKey) > wedgeGap {
		w.buf = w.buf[:0]
	}
	w.lastKey = at

	if r == '\n' || r == '\r' {
		if len(w.buf) > wedgeMinScan {
			payload := string(w.buf)
			w.buf = w.buf[:0]
			return payload, true
		}
		w.buf = w.buf[:0]
		return "", false
	}

	w.buf = append(w.buf, r)
	if len(w.buf) > wedgeMaxBuffer {
		w.buf = w.buf[:0]
	}
	return "", false
}

// Listen reads keystrokes from r until EOF or context cancellation, handing
// completed payloads to the dispatcher. The read loop timestamps arrivals
// itself, so r can be a raw input device stream.
func (w *Wedge) Listen(ctx context.Context, r io.Reader, d *Dispatcher) error {
	reader := bufio.NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ch, _, err := reader.ReadRune()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if payload, ok := w.Key(ch, time.Now()); ok {
			d.Scan(payload)
		}
	}
}
