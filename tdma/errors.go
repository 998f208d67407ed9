package tdma

import "fmt"

// Result is the closed set of outcomes a channel operation can report.
// It mirrors the original slotted_udp s_udp_err_t enumeration plus the
// TryAgain/OutOfSync values added for the receive state machine.
type Result int

const (
	Ok Result = iota
	TryAgain
	NotSender
	FrequencyViolation // reserved; never emitted, see Channel doc
	LatencyViolation   // reserved; never emitted, see Channel doc
	IllegalAddress
	SubscriptionFailure
	IllegalArgument
	NetworkError
	NotConnected
	BufferTooSmall
	MalformedPacket
	SlotMismatch
	OutOfSync
)

// String returns the human-readable name for r. The switch has one case
// per Result constant; any other value falls to the default case and
// reads as "unknown result (N)". errors_test.go checks that every
// constant it lists, and an out-of-range value, maps to a non-empty string.
func (r Result) String() string {
	switch r {
	case Ok:
		return "ok"
	case TryAgain:
		return "try again"
	case NotSender:
		return "not sender"
	case FrequencyViolation:
		return "frequency violation"
	case LatencyViolation:
		return "latency violation"
	case IllegalAddress:
		return "illegal address"
	case SubscriptionFailure:
		return "subscription failure"
	case IllegalArgument:
		return "illegal argument"
	case NetworkError:
		return "network error"
	case NotConnected:
		return "not connected"
	case BufferTooSmall:
		return "buffer too small"
	case MalformedPacket:
		return "malformed packet"
	case SlotMismatch:
		return "slot mismatch"
	case OutOfSync:
		return "out of sync"
	default:
		return fmt.Sprintf("unknown result (%d)", int(r))
	}
}

// Error implements the error interface for Result, so a bare Result can
// be used as the target of errors.Is against a *Error.
func (r Result) Error() string { return r.String() }

// Error wraps a Result with contextual detail so callers can both
// errors.Is a sentinel Result and read a human message.
type Error struct {
	Result Result
	Op     string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tdma: %s: %s: %v", e.Op, e.Result, e.Err)
	}
	return fmt.Sprintf("tdma: %s: %s", e.Op, e.Result)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the same Result, so callers can write
// errors.Is(err, tdma.OutOfSync) against a *tdma.Error.
func (e *Error) Is(target error) bool {
	t, ok := target.(Result)
	return ok && e.Result == t
}

func newErr(op string, res Result, err error) *Error {
	return &Error{Op: op, Result: res, Err: err}
}
