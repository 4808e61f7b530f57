package schedule

import (
	"time"

	"epitrack/pkg/types"
)

// Agenda gathers every derived view the verification pages need for one
// selected day.
type Agenda struct {
	Now      time.Time
	Today    types.Date
	Selected types.Date
	OnDate   []Entry
	Upcoming []Entry
	Overdue  []Entry
	Month    Month
	Skipped  int
}

func BuildAgenda(records []*types.Verification, selected types.Date, now time.Time, upcomingLimit int) *Agenda {
	today := types.DateOf(now)
	if !selected.Valid() {
		selected = today
	}

	return &Agenda{
		Now:      now,
		Today:    today,
		Selected: selected,
		OnDate:   Classified(OnDate(records, selected), now),
		Upcoming: Classified(Upcoming(records, now, upcomingLimit), now),
		Overdue:  Classified(Overdue(records, now), now),
		Month:    BuildMonth(records, selected, now),
		Skipped:  Skipped(records),
	}
}

// Report is a classified snapshot of the whole schedule, used by exports and
// the daily digest.
type Report struct {
	GeneratedAt time.Time
	Today       types.Date
	Entries     []Entry
	Overdue     []Entry
	DueToday    []Entry
	Skipped     int
}

func BuildReport(records []*types.Verification, now time.Time) *Report {
	dated := make([]*types.Verification, 0, len(records))
	for _, v := range records {
		if v.ScheduledDate.Valid() {
			dated = append(dated, v)
		}
	}
	sortByDate(dated)

	today := types.DateOf(now)
	report := &Report{
		GeneratedAt: now,
		Today:       today,
		Entries:     Classified(dated, now),
		Overdue:     Classified(Overdue(records, now), now),
		Skipped:     len(records) - len(dated),
	}

	for _, e := range report.Entries {
		if e.State == StateDueToday {
			report.DueToday = append(report.DueToday, e)
		}
	}

	return report
}

const DueSoonDays = 7

// Summary is what the dashboard shows: counts of checks needing attention,
// the alert list (overdue checks first, then those due today) and the next
// upcoming checks.
type Summary struct {
	Today    types.Date
	DueSoon  int
	Overdue  int
	Alerts   []Entry
	Upcoming []Entry
	Skipped  int
}

func BuildSummary(records []*types.Verification, now time.Time, upcomingLimit int) *Summary {
	report := BuildReport(records, now)

	alerts := make([]Entry, 0, len(report.Overdue)+len(report.DueToday))
	alerts = append(alerts, report.Overdue...)
	alerts = append(alerts, report.DueToday...)

	return &Summary{
		Today:    report.Today,
		DueSoon:  len(DueWithin(records, now, DueSoonDays)),
		Overdue:  len(report.Overdue),
		Alerts:   alerts,
		Upcoming: Classified(Upcoming(records, now, upcomingLimit), now),
		Skipped:  report.Skipped,
	}
}
