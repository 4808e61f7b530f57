package store

import (
	"epitrack/internal/utils"
	"epitrack/pkg/types"
)

// Joined rows as scanned from the list queries. All the shaping of raw rows
// into view models happens in this file.

type equipmentRow struct {
	types.EquipmentItem
	TypeName          *string `db:"type_name"`
	AssigneeFirstName *string `db:"assignee_first_name"`
	AssigneeLastName  *string `db:"assignee_last_name"`
}

type checkRow struct {
	types.EquipmentCheck
	EquipmentTypeName     *string `db:"equipment_type_name"`
	EquipmentSerialNumber *string `db:"equipment_serial_number"`
	AssigneeFirstName     *string `db:"assignee_first_name"`
	AssigneeLastName      *string `db:"assignee_last_name"`
}

type personnelRow struct {
	types.Firefighter
	EpiCount int `db:"epi_count"`
}

// assigneeName returns the joined person's full name, or "Non assigné" when
// the join found nobody.
func assigneeName(first, last *string) string {
	if first == nil && last == nil {
		return types.Unassigned
	}

	name := types.FullName(utils.PtrString(first), utils.PtrString(last))
	if name == "" {
		return types.Unassigned
	}
	return name
}

func toEquipment(row *equipmentRow) *types.Equipment {
	return &types.Equipment{
		ID:               row.ID,
		Type:             utils.PtrStringOr(row.TypeName, types.UnknownEquipmentType),
		SerialNumber:     row.SerialNumber,
		AssigneeID:       utils.PtrString(row.AssignedTo),
		AssignedTo:       assigneeName(row.AssigneeFirstName, row.AssigneeLastName),
		Status:           utils.PtrStringOr(row.Status, types.DefaultEquipmentStatus),
		Location:         types.DefaultLocation,
		PurchaseDate:     types.DateFromPtr(row.PurchaseDate),
		LastVerification: types.DateFromPtr(row.LastCheckDate),
		NextVerification: types.DateFromPtr(row.NextCheckDate),
	}
}

// toVerification keeps a missing check date as the zero Date so the
// aggregation can count it as skipped instead of inventing a day.
func toVerification(row *checkRow) *types.Verification {
	return &types.Verification{
		ID:               row.ID,
		EquipmentID:      row.EquipmentItemID,
		EquipmentName:    utils.PtrStringOr(row.EquipmentTypeName, types.UnknownEquipmentName),
		SerialNumber:     utils.PtrString(row.EquipmentSerialNumber),
		VerificationType: utils.PtrStringOr(row.VerificationType, types.DefaultVerificationType),
		ScheduledDate:    types.DateFromPtr(row.CheckDate),
		AssignedTo:       assigneeName(row.AssigneeFirstName, row.AssigneeLastName),
		Priority:         utils.PtrStringOr(row.Priority, string(types.PriorityNormal)),
		Status:           utils.PtrStringOr(row.Result, types.CheckResultPending),
		Notes:            utils.PtrString(row.Notes),
	}
}

func toPersonnel(row *personnelRow) *types.Personnel {
	return &types.Personnel{
		ID:        row.ID,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Grade:     utils.PtrStringOr(row.Grade, types.DefaultGrade),
		Station:   utils.PtrStringOr(row.Station, types.DefaultStation),
		Email:     utils.PtrString(row.Email),
		Status:    types.DefaultActivity,
		EpiCount:  row.EpiCount,
	}
}

func mapRows[R any, V any](rows []*R, fn func(*R) *V) []*V {
	out := make([]*V, 0, len(rows))
	for _, row := range rows {
		out = append(out, fn(row))
	}
	return out
}
