package schedule

import (
	"slices"
	"time"

	"epitrack/pkg/types"
)

const DefaultUpcomingLimit = 5

// Entry pairs a verification with its state at the time of aggregation.
type Entry struct {
	*types.Verification
	State State
}

// OnDate returns the records scheduled on day, in input order.
func OnDate(records []*types.Verification, day types.Date) []*types.Verification {
	out := make([]*types.Verification, 0)
	if !day.Valid() {
		return out
	}

	for _, v := range records {
		if v.ScheduledDate == day {
			out = append(out, v)
		}
	}

	return out
}

// Upcoming returns records scheduled strictly after the day of now, oldest
// first, at most limit of them. A limit of zero or less means
// DefaultUpcomingLimit. Completed records are kept: a check done ahead of
// its date still shows up here.
func Upcoming(records []*types.Verification, now time.Time, limit int) []*types.Verification {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}

	today := types.DateOf(now)
	out := make([]*types.Verification, 0)
	for _, v := range records {
		if v.ScheduledDate.Valid() && v.ScheduledDate.After(today) {
			out = append(out, v)
		}
	}

	sortByDate(out)

	if len(out) > limit {
		out = out[:limit]
	}

	return out
}

// Overdue returns records scheduled strictly before the day of now that are
// not done, most overdue first. The result is not truncated.
func Overdue(records []*types.Verification, now time.Time) []*types.Verification {
	out := make([]*types.Verification, 0)
	for _, v := range records {
		if !v.ScheduledDate.Valid() {
			continue
		}
		if ClassifyVerification(v, now) == StateOverdue {
			out = append(out, v)
		}
	}

	sortByDate(out)

	return out
}

// DueWithin returns the records not done and scheduled from the day of now
// up to and including days later, oldest first.
func DueWithin(records []*types.Verification, now time.Time, days int) []*types.Verification {
	today := types.DateOf(now)
	until := today.AddDays(days)

	out := make([]*types.Verification, 0)
	for _, v := range records {
		d := v.ScheduledDate
		if !d.Valid() || v.IsDone() {
			continue
		}
		if !d.Before(today) && !d.After(until) {
			out = append(out, v)
		}
	}

	sortByDate(out)

	return out
}

// Skipped counts the records whose scheduled date is missing or invalid.
// They are left out of every date-based view.
func Skipped(records []*types.Verification) int {
	n := 0
	for _, v := range records {
		if !v.ScheduledDate.Valid() {
			n++
		}
	}
	return n
}

// Classified tags each record with its state, preserving order.
func Classified(records []*types.Verification, now time.Time) []Entry {
	out := make([]Entry, 0, len(records))
	for _, v := range records {
		out = append(out, Entry{Verification: v, State: ClassifyVerification(v, now)})
	}
	return out
}

func sortByDate(records []*types.Verification) {
	slices.SortStableFunc(records, func(a, b *types.Verification) int {
		return a.ScheduledDate.Compare(b.ScheduledDate)
	})
}
