package cryptoerr

import (
	"bytes"
	"errors"
	"testing"

	"github.com/veriscan/cryptocore/serialize"
)

func TestDefaultFatality(t *testing.T) {
	fatal := OpenFailed("/tmp/x", errors.New("boom"))
	if !fatal.IsFatal() {
		t.Fatalf("OpenFailed should be fatal by default")
	}

	nonFatal := BadPassphrase()
	if nonFatal.IsFatal() {
		t.Fatalf("BadPassphrase should be non-fatal by default")
	}
}

func TestRethrowClearsID(t *testing.T) {
	e := BadMagic(1, 2)
	if e.ID == 0 {
		t.Fatalf("fresh error should have a non-zero id")
	}
	r := Rethrow(e)
	if r.ID != 0 {
		t.Fatalf("rethrown error should have id 0, got 0x%08X", r.ID)
	}
}

func TestHasKind(t *testing.T) {
	e := CryptoFailure("signature mismatch")
	if !HasKind(e, KindCryptoFailure) {
		t.Fatalf("expected HasKind to match")
	}
	if HasKind(e, KindBadMagic) {
		t.Fatalf("expected HasKind not to match a different kind")
	}
}

func TestBucketChainForwarding(t *testing.T) {
	var reportBuf, traceBuf bytes.Buffer
	reporter := NewReporter(&reportBuf)
	tracer := NewTracer(&traceBuf)
	queue := NewQueue()

	head := Chain(reporter, tracer, queue)
	head.AddError(DivideByZero())

	if reportBuf.Len() == 0 {
		t.Fatalf("expected reporter to have written something")
	}
	if traceBuf.Len() == 0 {
		t.Fatalf("expected tracer to have written something")
	}
	if queue.Len() != 1 {
		t.Fatalf("expected queue to have accumulated 1 error, got %d", queue.Len())
	}
}

func TestQueueSerializeRoundTrip(t *testing.T) {
	q := NewQueue()
	q.AddError(BadMagic(0x1234, 0x5678))
	q.AddError(DecodeError("truncated BER length"))

	s := serialize.NewSerializer(nil)
	var buf bytes.Buffer
	if err := s.WriteObject(serialize.NewWriter(&buf), q); err != nil {
		t.Fatalf("write: %v", err)
	}

	obj, err := s.ReadObject(serialize.NewReader(&buf))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	got, ok := obj.(*Queue)
	if !ok {
		t.Fatalf("wrong type %T", obj)
	}
	if got.Len() != 2 {
		t.Fatalf("expected 2 errors, got %d", got.Len())
	}
	errs := got.Errors()
	if errs[0].Kind != KindBadMagic || errs[1].Kind != KindDecodeError {
		t.Fatalf("kinds mismatch: %v, %v", errs[0].Kind, errs[1].Kind)
	}
}
