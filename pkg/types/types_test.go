package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want Date
	}{
		{"2026-10-15", Date{2026, time.October, 15}},
		{" 2026-10-15 ", Date{2026, time.October, 15}},
		{"2026-10-15T23:30:00-05:00", Date{2026, time.October, 15}},
		{"2026-10-15T08:00:00Z", Date{2026, time.October, 15}},
		{"2026-10-15 08:00:00", Date{2026, time.October, 15}},
		{"15/10/2026", Date{2026, time.October, 15}},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "tomorrow", "2026-02-30", "2026-13-01", "15-10-2026"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestDate(t *testing.T) {
	d := MustParseDate("2026-12-31")

	assert.True(t, d.Valid())
	assert.False(t, Date{}.Valid())
	assert.False(t, Date{2026, time.February, 29}.Valid())
	assert.True(t, Date{2028, time.February, 29}.Valid())

	assert.Equal(t, MustParseDate("2027-01-01"), d.AddDays(1))
	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.After(d.AddDays(-1)))
	assert.Zero(t, d.Compare(MustParseDate("2026-12-31")))

	assert.Equal(t, "2026-12-31", d.String())
	assert.Equal(t, "31/12/2026", d.Format("02/01/2006"))
	assert.Equal(t, "", Date{}.String())
	assert.Equal(t, time.Thursday, d.Weekday())

	assert.Nil(t, Date{}.Ptr())
	assert.Equal(t, d, DateFromPtr(d.Ptr()))
	assert.Equal(t, Date{}, DateFromPtr(nil))
}

func TestParsePriority(t *testing.T) {
	assert.Equal(t, PriorityUrgent, ParsePriority(" Urgent "))
	assert.Equal(t, PriorityLow, ParsePriority("LOW"))
	assert.Equal(t, PriorityOther, ParsePriority("medium"))
	assert.Equal(t, PriorityOther, ParsePriority(""))
	assert.Equal(t, "Haute", PriorityHigh.Label())
	assert.Equal(t, "", PriorityOther.Label())
}

func TestParseCheckStatus(t *testing.T) {
	assert.True(t, ParseCheckStatus("terminé").Done())
	assert.True(t, ParseCheckStatus("TERMINÉ").Done())
	assert.True(t, ParseCheckStatus("Done").Done())
	assert.False(t, ParseCheckStatus("Planifié").Done())
	assert.Equal(t, CheckStatusPlanned, ParseCheckStatus("planifiée"))
	assert.Equal(t, CheckStatusOther, ParseCheckStatus("perdu"))
	assert.False(t, ParseCheckStatus("perdu").Done())

	v := &Verification{Status: "Terminé", Priority: "HIGH"}
	assert.True(t, v.IsDone())
	assert.Equal(t, PriorityHigh, v.PriorityLevel())
}

func TestSplitFullName(t *testing.T) {
	first, last := SplitFullName("  Yann  Le Gall ")
	assert.Equal(t, "Yann", first)
	assert.Equal(t, "Le Gall", last)

	first, last = SplitFullName("Martin")
	assert.Equal(t, "Martin", first)
	assert.Equal(t, "", last)

	first, last = SplitFullName("   ")
	assert.Empty(t, first)
	assert.Empty(t, last)

	assert.Equal(t, "Marie Durand", FullName(" Marie", "Durand "))
	assert.Equal(t, "Marie", FullName("Marie", ""))
}

func TestValidationError(t *testing.T) {
	verr := NewValidationError()
	assert.NoError(t, verr.OrNil())

	verr.Add("b", "second")
	verr.Add("a", "first")
	verr.Add("a", "ignored")

	err := verr.OrNil()
	require.Error(t, err)
	assert.Equal(t, "validation failed: a: first; b: second", err.Error())
}

func TestConfigLocation(t *testing.T) {
	c := &Config{Timezone: "UTC"}
	loc, err := c.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	c.Timezone = "Nowhere/Special"
	_, err = c.Location()
	assert.Error(t, err)
}
