package server

import (
	"fmt"
	"html/template"
	"time"

	"epitrack/internal/inventory"
	"epitrack/internal/schedule"
	"epitrack/pkg/types"
)

var monthNames = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

var weekdayNames = [...]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}

// Monday first, matching the calendar grid.
var weekdayHeaders = []string{"Lun", "Mar", "Mer", "Jeu", "Ven", "Sam", "Dim"}

func monthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}

// shortDate renders 15/10/2026, or a dash for a missing date.
func shortDate(d types.Date) string {
	if !d.Valid() {
		return "-"
	}
	return d.Format("02/01/2006")
}

// longDate renders "jeudi 15 octobre 2026".
func longDate(d types.Date) string {
	if !d.Valid() {
		return "Date inconnue"
	}
	return fmt.Sprintf("%s %d %s %d", weekdayNames[d.Weekday()], d.Day, monthName(d.Month), d.Year)
}

func isoDate(d types.Date) string {
	return d.String()
}

var stateClasses = map[schedule.State]string{
	schedule.StateDone:      "state-done",
	schedule.StateOverdue:   "state-overdue",
	schedule.StateDueToday:  "state-today",
	schedule.StateScheduled: "state-scheduled",
}

func stateClass(s schedule.State) string {
	if c, ok := stateClasses[s]; ok {
		return c
	}
	return "state-scheduled"
}

// priorityLabel falls back to the stored value, then to "Normale".
func priorityLabel(raw string) string {
	if label := types.ParsePriority(raw).Label(); label != "" {
		return label
	}
	if raw != "" {
		return raw
	}
	return types.PriorityNormal.Label()
}

func priorityClass(raw string) string {
	p := types.ParsePriority(raw)
	if p == types.PriorityOther {
		p = types.PriorityNormal
	}
	return "priority-" + string(p)
}

func conditionClass(status string) string {
	return "condition-" + string(inventory.ConditionOf(status))
}

// firstN returns at most n entries.
func firstN(entries []schedule.Entry, n int) []schedule.Entry {
	if n < 0 || len(entries) <= n {
		return entries
	}
	return entries[:n]
}

// remaining counts the entries past the first n.
func remaining(entries []schedule.Entry, n int) int {
	if n < 0 || len(entries) <= n {
		return 0
	}
	return len(entries) - n
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"shortDate":      shortDate,
		"longDate":       longDate,
		"isoDate":        isoDate,
		"monthName":      monthName,
		"weekdayHeaders": func() []string { return weekdayHeaders },
		"stateClass":     stateClass,
		"priorityLabel":  priorityLabel,
		"priorityClass":  priorityClass,
		"conditionClass": conditionClass,
		"firstN":         firstN,
		"remaining":      remaining,
		"fieldError": func(verr *types.ValidationError, field string) string {
			if verr == nil {
				return ""
			}
			return verr.Fields[field]
		},
	}
}
