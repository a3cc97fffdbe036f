package cryptoerr

import (
	"fmt"
	"io"
	"os"
)

// Reporter formats errors and emits them to a sink, typically the
// standard error stream. Fatal errors are suffixed "Exiting"; non-fatal
// ones "Continuing", matching the reference notification convention.
// Reporter does not itself exit the process — propagation policy is the
// caller's decision (spec §7) — it only chooses the suffix.
type Reporter struct {
	chain
	Sink io.Writer
}

// NewReporter returns a Reporter writing to sink. A nil sink defaults to
// os.Stderr.
func NewReporter(sink io.Writer) *Reporter {
	if sink == nil {
		sink = os.Stderr
	}
	return &Reporter{Sink: sink}
}

func (r *Reporter) HandleError(e *Error) {
	suffix := "Continuing"
	if e.IsFatal() {
		suffix = "Exiting"
	}
	if e.Flags&SuppressThirdMsg != 0 {
		fmt.Fprintf(r.Sink, "%s: %s\n", e.Error(), suffix)
		return
	}
	fmt.Fprintf(r.Sink, "%s: %s\n%s\n", e.Error(), suffix, thirdMessage(e))
}

func (r *Reporter) AddError(e *Error) { addErrorVia(r, r.child, e) }

// thirdMessage renders the extra diagnostic line the reference prints
// below the primary message unless SuppressThirdMsg is set.
func thirdMessage(e *Error) string {
	return fmt.Sprintf("  (error class %s, id 0x%08X)", e.Kind, e.ID)
}

// Tracer writes every error to a debug channel regardless of fatality,
// for post-mortem diagnosis. It never decides fatal/continue semantics;
// it just logs.
type Tracer struct {
	chain
	Sink io.Writer
}

// NewTracer returns a Tracer writing to sink. A nil sink disables
// output (useful for tests that only want the forwarding behavior).
func NewTracer(sink io.Writer) *Tracer {
	return &Tracer{Sink: sink}
}

func (t *Tracer) HandleError(e *Error) {
	if t.Sink == nil {
		return
	}
	fmt.Fprintf(t.Sink, "[trace] id=0x%08X kind=%s msg=%s fatal=%v\n", e.ID, e.Kind, e.Msg, e.IsFatal())
}

func (t *Tracer) AddError(e *Error) { addErrorVia(t, t.child, e) }
