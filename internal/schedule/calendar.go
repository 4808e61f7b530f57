package schedule

import (
	"time"

	"epitrack/pkg/types"
)

type CalendarDay struct {
	Date       types.Date
	InMonth    bool
	IsToday    bool
	IsSelected bool
	Count      int
	HasOverdue bool
}

type Month struct {
	Year  int
	Month time.Month
	Weeks [][]CalendarDay
	Prev  types.Date
	Next  types.Date
}

type dayMarks struct {
	count   int
	overdue bool
}

// BuildMonth lays out the month containing selected as whole weeks starting
// on Monday, marking the days that carry verifications and those that carry
// at least one overdue verification.
func BuildMonth(records []*types.Verification, selected types.Date, now time.Time) Month {
	today := types.DateOf(now)
	if !selected.Valid() {
		selected = today
	}

	marks := make(map[types.Date]*dayMarks)
	for _, v := range records {
		if !v.ScheduledDate.Valid() {
			continue
		}
		m, ok := marks[v.ScheduledDate]
		if !ok {
			m = new(dayMarks)
			marks[v.ScheduledDate] = m
		}
		m.count++
		if ClassifyVerification(v, now) == StateOverdue {
			m.overdue = true
		}
	}

	first := types.Date{Year: selected.Year, Month: selected.Month, Day: 1}
	last := first.AddDays(32)
	last = types.Date{Year: last.Year, Month: last.Month, Day: 1}.AddDays(-1)

	start := first.AddDays(-mondayOffset(first.Weekday()))
	end := last.AddDays(6 - mondayOffset(last.Weekday()))

	month := Month{
		Year:  first.Year,
		Month: first.Month,
		Prev:  first.AddDays(-1),
		Next:  last.AddDays(1),
	}
	month.Prev.Day = 1

	var week []CalendarDay
	for d := start; !d.After(end); d = d.AddDays(1) {
		day := CalendarDay{
			Date:       d,
			InMonth:    d.Month == first.Month,
			IsToday:    d == today,
			IsSelected: d == selected,
		}
		if m, ok := marks[d]; ok {
			day.Count = m.count
			day.HasOverdue = m.overdue
		}

		week = append(week, day)
		if len(week) == 7 {
			month.Weeks = append(month.Weeks, week)
			week = nil
		}
	}

	return month
}

func mondayOffset(w time.Weekday) int {
	return (int(w) + 6) % 7
}
