package speech

import "strings"

// Status is a job lifecycle state as reported by the remote service. States
// are owned by the service and observed, never decided, by this client. The
// provider string is stored verbatim; comparisons are case-insensitive only
// at the comparison site.
type Status string

// Provider status constants.
const (
	StatusNotStarted Status = "NotStarted"
	StatusRunning    Status = "Running"
	StatusSucceeded  Status = "Succeeded"
	StatusFailed     Status = "Failed"
	StatusCancelled  Status = "Cancelled"
)

// Is compares two statuses case-insensitively.
func (s Status) Is(other Status) bool {
	return strings.EqualFold(string(s), string(other))
}

// Terminal reports whether the job has finished, successfully or not.
func (s Status) Terminal() bool {
	return s.Is(StatusSucceeded) || s.Is(StatusFailed) || s.Is(StatusCancelled)
}
