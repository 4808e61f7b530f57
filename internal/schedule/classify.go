package schedule

import (
	"time"

	"epitrack/pkg/types"
)

// State is the display state of a verification.
type State string

const (
	StateDone      State = "done"
	StateOverdue   State = "overdue"
	StateDueToday  State = "due_today"
	StateScheduled State = "scheduled"
)

// Classify derives the display state of a verification. Rules are applied in
// order and the first match wins: completion, lateness, due today, scheduled.
// A done record is never overdue. A record without a valid date cannot be
// late, so unless it is done it reads as scheduled.
func Classify(status string, scheduled types.Date, now time.Time) State {
	if types.ParseCheckStatus(status).Done() {
		return StateDone
	}

	if !scheduled.Valid() {
		return StateScheduled
	}

	today := types.DateOf(now)
	switch {
	case scheduled.Before(today):
		return StateOverdue
	case scheduled == today:
		return StateDueToday
	}

	return StateScheduled
}

// ClassifyVerification is Classify applied to a record.
func ClassifyVerification(v *types.Verification, now time.Time) State {
	return Classify(v.Status, v.ScheduledDate, now)
}

var stateLabels = map[State]string{
	StateDone:      "Terminé",
	StateOverdue:   "En retard",
	StateDueToday:  "Aujourd'hui",
	StateScheduled: "Planifié",
}

func (s State) Label() string {
	return stateLabels[s]
}
