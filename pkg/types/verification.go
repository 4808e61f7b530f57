package types

import (
	"strings"
	"time"
)

// Priority is the closed set of verification priorities. Stored values are
// free text; anything outside the set parses to PriorityOther.
type Priority string

const (
	PriorityOther  Priority = ""
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var Priorities = []Priority{PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent}

var priorityLabels = map[Priority]string{
	PriorityLow:    "Basse",
	PriorityNormal: "Normale",
	PriorityHigh:   "Haute",
	PriorityUrgent: "Urgente",
}

func ParsePriority(raw string) Priority {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := priorityLabels[p]; ok {
		return p
	}
	return PriorityOther
}

func (p Priority) Label() string {
	return priorityLabels[p]
}

// CheckStatus is the closed set of verification states. "terminé" is the
// only terminal value; every other state, known or not, is not done.
type CheckStatus string

const (
	CheckStatusOther      CheckStatus = ""
	CheckStatusPlanned    CheckStatus = "planifié"
	CheckStatusPending    CheckStatus = "en attente"
	CheckStatusTodo       CheckStatus = "à faire"
	CheckStatusInProgress CheckStatus = "en cours"
	CheckStatusDone       CheckStatus = "terminé"
)

// Values written to equipment_checks.result.
const (
	CheckResultPlanned = "Planifié"
	CheckResultPending = "En attente"
	CheckResultDone    = "Terminé"
)

var checkStatusAliases = map[string]CheckStatus{
	"planifié":   CheckStatusPlanned,
	"planifiée":  CheckStatusPlanned,
	"en attente": CheckStatusPending,
	"à faire":    CheckStatusTodo,
	"en cours":   CheckStatusInProgress,
	"terminé":    CheckStatusDone,
	"done":       CheckStatusDone,
}

func ParseCheckStatus(raw string) CheckStatus {
	if s, ok := checkStatusAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return CheckStatusOther
}

func (s CheckStatus) Done() bool {
	return s == CheckStatusDone
}

const DefaultVerificationType = "Vérification périodique"

var VerificationTypes = []string{
	DefaultVerificationType,
	"Contrôle de conformité",
	"Inspection après utilisation",
	"Test de fonctionnement",
	"Maintenance préventive",
}

// EquipmentCheck is a row of equipment_checks.
type EquipmentCheck struct {
	ID               string     `db:"id"`
	EquipmentItemID  string     `db:"equipment_item_id"`
	CheckedBy        *string    `db:"checked_by"`
	CheckDate        *time.Time `db:"check_date"`
	NextCheckDate    *time.Time `db:"next_check_date"`
	Result           *string    `db:"result"`
	Notes            *string    `db:"notes"`
	VerificationType *string    `db:"verification_type"`
	Priority         *string    `db:"priority"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

// Verification is the view of a check joined with its equipment and
// assignee. ScheduledDate is the zero Date when the stored date is missing.
type Verification struct {
	ID               string
	EquipmentID      string
	EquipmentName    string
	SerialNumber     string
	VerificationType string
	ScheduledDate    Date
	AssignedTo       string
	Priority         string
	Status           string
	Notes            string
}

func (v *Verification) IsDone() bool {
	return ParseCheckStatus(v.Status).Done()
}

func (v *Verification) PriorityLevel() Priority {
	return ParsePriority(v.Priority)
}
