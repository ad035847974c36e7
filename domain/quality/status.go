package quality

// Status is the closed severity ordering for check outcomes and verdicts.
// The integer order makes aggregation a max-reduce: StatusStop > StatusWarn > StatusPass.
type Status int

const (
	StatusPass Status = iota
	StatusWarn
	StatusStop
)

// String returns the wire representation of the status
func (s Status) String() string {
	switch s {
	case StatusStop:
		return "STOP"
	case StatusWarn:
		return "WARN"
	default:
		return "PASS"
	}
}

// MarshalText encodes the status for JSON output
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Worst returns the more severe of two statuses
func Worst(a, b Status) Status {
	if b > a {
		return b
	}
	return a
}
