package types

import (
	"strings"
	"time"
)

const (
	DefaultStation  = "CS Principal"
	DefaultGrade    = "Sapeur"
	DefaultActivity = "Actif"
	Unassigned      = "Non assigné"
)

var Grades = []string{
	"Sapeur",
	"Caporal",
	"Caporal-chef",
	"Sergent",
	"Sergent-chef",
	"Adjudant",
	"Lieutenant",
	"Capitaine",
}

// Firefighter is a row of firefighters.
type Firefighter struct {
	ID        string    `db:"id"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	Email     *string   `db:"email"`
	Station   *string   `db:"station"`
	Grade     *string   `db:"grade"`
	CreatedAt time.Time `db:"created_at"`
}

type Personnel struct {
	ID        string
	FirstName string
	LastName  string
	Grade     string
	Station   string
	Email     string
	Status    string
	EpiCount  int
}

func (p *Personnel) FullName() string {
	return FullName(p.FirstName, p.LastName)
}

func FullName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// SplitFullName splits "First Last" on the first run of spaces. Everything
// after it is the last name, so compound names like "Le Gall" survive.
func SplitFullName(name string) (first, last string) {
	fields := strings.Fields(name)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}
