package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epitrack/pkg/types"
)

func findDay(m Month, d types.Date) (CalendarDay, bool) {
	for _, week := range m.Weeks {
		for _, cd := range week {
			if cd.Date == d {
				return cd, true
			}
		}
	}
	return CalendarDay{}, false
}

func TestBuildMonthLayout(t *testing.T) {
	// October 2026 starts on a Thursday and ends on a Saturday.
	m := BuildMonth(nil, types.MustParseDate("2026-10-20"), now)

	assert.Equal(t, 2026, m.Year)
	assert.Equal(t, time.October, m.Month)
	require.Len(t, m.Weeks, 5)

	for _, week := range m.Weeks {
		require.Len(t, week, 7)
		assert.Equal(t, time.Monday, week[0].Date.Weekday())
	}

	assert.Equal(t, types.MustParseDate("2026-09-28"), m.Weeks[0][0].Date)
	assert.False(t, m.Weeks[0][0].InMonth)
	assert.Equal(t, types.MustParseDate("2026-11-01"), m.Weeks[4][6].Date)

	assert.Equal(t, types.MustParseDate("2026-09-01"), m.Prev)
	assert.Equal(t, types.MustParseDate("2026-11-01"), m.Next)

	selected, ok := findDay(m, types.MustParseDate("2026-10-20"))
	require.True(t, ok)
	assert.True(t, selected.IsSelected)

	today, ok := findDay(m, day(0))
	require.True(t, ok)
	assert.True(t, today.IsToday)
}

func TestBuildMonthMarkers(t *testing.T) {
	records := []*types.Verification{
		rec("late", day(-2), "Planifié"),
		rec("late-done", day(-2), "terminé"),
		rec("done", day(-5), "terminé"),
		rec("soon", day(3), "Planifié"),
		rec("soon2", day(3), "Planifié"),
		rec("broken", types.Date{}, "Planifié"),
	}

	m := BuildMonth(records, day(0), now)

	late, _ := findDay(m, day(-2))
	assert.Equal(t, 2, late.Count)
	assert.True(t, late.HasOverdue)

	done, _ := findDay(m, day(-5))
	assert.Equal(t, 1, done.Count)
	assert.False(t, done.HasOverdue)

	soon, _ := findDay(m, day(3))
	assert.Equal(t, 2, soon.Count)
	assert.False(t, soon.HasOverdue)

	empty, _ := findDay(m, day(1))
	assert.Zero(t, empty.Count)
}

func TestBuildMonthFebruary(t *testing.T) {
	m := BuildMonth(nil, types.MustParseDate("2027-02-10"), now)

	// February 2027 starts and ends mid-week: Monday 1st to Sunday 28th.
	require.Len(t, m.Weeks, 4)
	assert.Equal(t, types.MustParseDate("2027-02-01"), m.Weeks[0][0].Date)
	assert.Equal(t, types.MustParseDate("2027-02-28"), m.Weeks[3][6].Date)
	assert.Equal(t, types.MustParseDate("2027-01-01"), m.Prev)
	assert.Equal(t, types.MustParseDate("2027-03-01"), m.Next)
}

func TestBuildAgenda(t *testing.T) {
	records := []*types.Verification{
		rec("A", day(-1), "En attente"),
		rec("B", day(0), "En attente"),
		rec("C", day(1), "En attente"),
		rec("D", day(-1), "terminé"),
		rec("X", types.Date{}, "En attente"),
	}

	a := BuildAgenda(records, types.Date{}, now, 5)

	assert.Equal(t, day(0), a.Today)
	assert.Equal(t, day(0), a.Selected, "invalid selection falls back to today")
	require.Len(t, a.OnDate, 1)
	assert.Equal(t, "B", a.OnDate[0].ID)
	assert.Equal(t, StateDueToday, a.OnDate[0].State)
	require.Len(t, a.Overdue, 1)
	assert.Equal(t, StateOverdue, a.Overdue[0].State)
	require.Len(t, a.Upcoming, 1)
	assert.Equal(t, "C", a.Upcoming[0].ID)
	assert.Equal(t, 1, a.Skipped)

	yesterday := BuildAgenda(records, day(-1), now, 5)
	require.Len(t, yesterday.OnDate, 2)
	assert.Equal(t, StateOverdue, yesterday.OnDate[0].State)
	assert.Equal(t, StateDone, yesterday.OnDate[1].State)
}

func TestBuildReport(t *testing.T) {
	records := []*types.Verification{
		rec("C", day(1), "En attente"),
		rec("A", day(-1), "En attente"),
		rec("X", types.Date{}, "En attente"),
		rec("B", day(0), "En attente"),
	}

	r := BuildReport(records, now)

	assert.Equal(t, day(0), r.Today)
	assert.Equal(t, 1, r.Skipped)
	require.Len(t, r.Entries, 3)
	assert.Equal(t, "A", r.Entries[0].ID)
	assert.Equal(t, "B", r.Entries[1].ID)
	assert.Equal(t, "C", r.Entries[2].ID)
	require.Len(t, r.Overdue, 1)
	require.Len(t, r.DueToday, 1)
	assert.Equal(t, "B", r.DueToday[0].ID)

	assert.Equal(t, "C", records[0].ID, "input order untouched")
}

func TestBuildSummary(t *testing.T) {
	records := []*types.Verification{
		rec("today", day(0), "En attente"),
		rec("late", day(-3), "Planifié"),
		rec("week", day(7), "Planifié"),
		rec("later", day(8), "Planifié"),
		rec("done", day(2), "Terminé"),
		rec("nodate", types.Date{}, "Planifié"),
	}

	s := BuildSummary(records, now, 1)

	assert.Equal(t, day(0), s.Today)
	assert.Equal(t, 2, s.DueSoon)
	assert.Equal(t, 1, s.Overdue)
	assert.Equal(t, 1, s.Skipped)
	require.Len(t, s.Alerts, 2)
	assert.Equal(t, "late", s.Alerts[0].ID)
	assert.Equal(t, StateOverdue, s.Alerts[0].State)
	assert.Equal(t, "today", s.Alerts[1].ID)
	assert.Equal(t, StateDueToday, s.Alerts[1].State)
	require.Len(t, s.Upcoming, 1)
	assert.Equal(t, "done", s.Upcoming[0].ID)
}
