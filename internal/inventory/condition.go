package inventory

import "strings"

// Condition buckets free-text equipment statuses for display.
type Condition string

const (
	ConditionGood    Condition = "good"
	ConditionWarning Condition = "warning"
	ConditionBad     Condition = "bad"
	ConditionNeutral Condition = "neutral"
)

var conditionsByStatus = map[string]Condition{
	"available":  ConditionGood,
	"disponible": ConditionGood,
	"bon":        ConditionGood,
	"bon état":   ConditionGood,

	"maintenance": ConditionWarning,
	"moyen":       ConditionWarning,
	"à vérifier":  ConditionWarning,

	"retired":     ConditionBad,
	"mauvais":     ConditionBad,
	"à remplacer": ConditionBad,
}

func ConditionOf(status string) Condition {
	if c, ok := conditionsByStatus[strings.ToLower(strings.TrimSpace(status))]; ok {
		return c
	}
	return ConditionNeutral
}

// Statuses offered by the add equipment form.
var Statuses = []string{
	"Disponible",
	"Bon état",
	"Moyen",
	"À vérifier",
	"Maintenance",
	"Mauvais",
	"À remplacer",
}
