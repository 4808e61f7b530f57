package types

type ScheduleVerificationForm struct {
	EquipmentRef     string `form:"epi_id"`
	VerificationType string `form:"verification_type"`
	ScheduledDate    string `form:"scheduled_date"`
	AssignedTo       string `form:"assigned_to"`
	Priority         string `form:"priority"`
	Notes            string `form:"notes"`
}

type AddEquipmentForm struct {
	Type         string `form:"type"`
	SerialNumber string `form:"serial_number"`
	AssignedTo   string `form:"assigned_to"`
	PurchaseDate string `form:"purchase_date"`
	NextCheck    string `form:"next_check"`
	Status       string `form:"status"`
}

type AddPersonnelForm struct {
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
	Email     string `form:"email"`
	Station   string `form:"station"`
	Grade     string `form:"grade"`
}
