// Package cryptoerr implements the error taxonomy every other package in
// this module surfaces failures through: a small, closed set of typed
// error kinds (each fatal-by-default or not), and a chain-of-
// responsibility bucket that lets a caller compose a reporter, a tracer,
// and an accumulating queue without any of them needing to know about
// the others.
//
// The core never swallows an error: every failure here is returned to
// the caller as a typed *Error (or a wrapped standard error), never
// retried internally. Whether a non-fatal error is logged and
// processing continues, or a fatal one aborts the program, is the
// caller's decision.
package cryptoerr
