package forms

import "errors"

// Status is the lifecycle of a single form submission.
type Status int

const (
	Idle Status = iota
	Pending
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrBusy is returned by Begin while a request is already pending.
var ErrBusy = errors.New("a request is already in progress")
