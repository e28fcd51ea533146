package sessions

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a correction session.
type Status string

const (
	// StatusPlanned means the engine has produced an actions file that has
	// not been opened for review yet.
	StatusPlanned Status = "planned"
	// StatusReviewing means the actions file has been handed to an editor.
	StatusReviewing Status = "reviewing"
	// StatusApplied means the output subtitle file has been written.
	StatusApplied Status = "applied"
	// StatusAbandoned means the user discarded the session.
	StatusAbandoned Status = "abandoned"
)

var allStatuses = []Status{
	StatusPlanned,
	StatusReviewing,
	StatusApplied,
	StatusAbandoned,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// ValidStatus reports whether value names a known status.
func ValidStatus(value Status) bool {
	_, ok := statusSet[Status(strings.ToLower(strings.TrimSpace(string(value))))]
	return ok
}

// AllStatuses returns every status in lifecycle order.
func AllStatuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// Finished reports whether the status is terminal.
func (s Status) Finished() bool {
	return s == StatusApplied || s == StatusAbandoned
}

// Session is one plan/review/apply cycle over a subtitle file.
type Session struct {
	ID          int64
	Token       string
	SourcePath  string
	OutputPath  string
	ActionsPath string
	Threshold   float64
	// MinTextLength, IgnoreCase, and DeletePatterns record the full engine
	// tuning so the apply phase can reproduce the exact plan pass.
	MinTextLength  int
	IgnoreCase     bool
	DeletePatterns []string
	TextMode       string
	Status         Status
	EntryCount     int
	KeepCount      int
	MergeCount     int
	DeleteCount    int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
