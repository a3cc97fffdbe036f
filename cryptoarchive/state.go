package cryptoarchive

import "github.com/veriscan/cryptocore/cryptoerr"

// State is the crypto archive's lifecycle stage, per spec §4.10:
//
//	UNSTARTED -> (Start) -> UNKNOWN -> (first write|read) -> WRITING|READING -> (Finish) -> FINISHED -> (Start) -> UNKNOWN
type State int

const (
	Unstarted State = iota
	Unknown
	Writing
	Reading
	Finished
)

func (s State) String() string {
	switch s {
	case Unstarted:
		return "UNSTARTED"
	case Unknown:
		return "UNKNOWN"
	case Writing:
		return "WRITING"
	case Reading:
		return "READING"
	case Finished:
		return "FINISHED"
	default:
		return "INVALID"
	}
}

// ErrInvalidOperation is returned when a caller reads after a write (or
// vice versa) without an intervening Start, or otherwise violates the
// state machine.
var ErrInvalidOperation = cryptoerr.New(cryptoerr.KindInvalidArgument, "operation not valid in the archive's current state", nil, 0)
