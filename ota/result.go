package ota

// Result is the discriminated terminal outcome of an update attempt.
type Result int

const (
	// ResultNotStarted - no update has been attempted
	ResultNotStarted Result = iota

	// ResultInProgress - an update is currently transferring
	ResultInProgress

	// ResultCompleted - the image transferred and validated; not yet active
	ResultCompleted

	// ResultActivated - the co-processor switched boot targets and rebooted
	ResultActivated

	// ResultNotRequired - the co-processor already runs the image version;
	// a success-like early exit, not a failure
	ResultNotRequired

	// ResultFailed - the session ended in a terminal failure
	ResultFailed
)

// String returns the result name.
func (r Result) String() string {
	switch r {
	case ResultNotStarted:
		return "not started"
	case ResultInProgress:
		return "in progress"
	case ResultCompleted:
		return "completed"
	case ResultActivated:
		return "activated"
	case ResultNotRequired:
		return "not required"
	case ResultFailed:
		return "failed"
	default:
		return "unknown"
	}
}
