package cryptoerr

// Bucket is a chain-of-responsibility error handler: AddError invokes
// the bucket's own HandleError and then forwards to its child bucket, if
// any. Buckets compose freely — a reporter can feed a tracer which feeds
// a queue, so one AddError call fans an error out to the standard error
// sink, the debug channel, and an accumulating list in one step.
type Bucket interface {
	HandleError(e *Error)
	AddError(e *Error)
	SetChild(child Bucket)
}

// chain implements the forwarding half of Bucket; concrete buckets embed
// it and only need to implement HandleError.
type chain struct {
	child Bucket
}

func (c *chain) SetChild(child Bucket) { c.child = child }

// Chain links buckets front-to-back: Chain(a, b, c) makes a forward to
// b forward to c, and returns a.
func Chain(buckets ...Bucket) Bucket {
	for i := 0; i < len(buckets)-1; i++ {
		buckets[i].SetChild(buckets[i+1])
	}
	if len(buckets) == 0 {
		return nil
	}
	return buckets[0]
}

// addErrorVia is the shared AddError body: handle locally, then forward.
func addErrorVia(b Bucket, child Bucket, e *Error) {
	b.HandleError(e)
	if child != nil {
		child.AddError(e)
	}
}
