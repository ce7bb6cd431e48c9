package draftorder

type Status string

const (
	StatusCreated    Status = "CREATED"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusError      Status = "ERROR"
	// StatusFailed is terminal: the reaper gave up after the configured number of retries.
	StatusFailed Status = "FAILED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusCreated, StatusProcessing, StatusCompleted, StatusError, StatusFailed:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusFailed
}

// ReapableStatuses are the statuses an expired record may have to be picked up by a cleanup pass.
// COMPLETED is included so a pass that marked a record but failed to delete it is finished later.
func ReapableStatuses() []Status {
	return []Status{StatusCreated, StatusError, StatusCompleted}
}
