package driver

import (
	"fmt"
	"io"
	"time"
)

// Timings records per-phase wall-clock durations for --timings output.
type Timings struct {
	Resolve time.Duration
	Check   time.Duration
}

// Print writes the recorded phase durations.
func (t Timings) Print(w io.Writer) {
	fmt.Fprintf(w, "timings: resolve=%s check=%s\n", t.Resolve, t.Check)
}
