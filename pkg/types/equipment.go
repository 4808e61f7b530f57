package types

import "time"

const (
	DefaultEquipmentStatus = "Disponible"
	UnknownEquipmentType   = "Type inconnu"
	UnknownEquipmentName   = "Équipement inconnu"
	DefaultLocation        = "Caserne principale"
)

type EquipmentType struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

// EquipmentItem is a row of equipment_items.
type EquipmentItem struct {
	ID            string     `db:"id"`
	TypeID        *string    `db:"type_id"`
	SerialNumber  string     `db:"serial_number"`
	AssignedTo    *string    `db:"assigned_to"`
	Status        *string    `db:"status"`
	PurchaseDate  *time.Time `db:"purchase_date"`
	LastCheckDate *time.Time `db:"last_check_date"`
	NextCheckDate *time.Time `db:"next_check_date"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// Equipment is an item joined with its type and assignee.
type Equipment struct {
	ID               string
	Type             string
	SerialNumber     string
	AssigneeID       string
	AssignedTo       string
	Status           string
	Location         string
	PurchaseDate     Date
	LastVerification Date
	NextVerification Date
}
