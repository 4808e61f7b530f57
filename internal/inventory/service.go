package inventory

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	"epitrack/internal/utils"
	"epitrack/pkg/types"
)

type TypeRepository interface {
	GetOrCreateType(ctx context.Context, name string) (*types.EquipmentType, error)
}

type EquipmentRepository interface {
	CreateEquipmentItem(ctx context.Context, item *types.EquipmentItem) error
}

type PersonnelRepository interface {
	FirefighterByName(ctx context.Context, firstName, lastName string) (*types.Firefighter, error)
	CreateFirefighter(ctx context.Context, firefighter *types.Firefighter) error
}

// Service adds equipment and personnel from the inventory forms.
type Service struct {
	equipmentTypes TypeRepository
	equipment      EquipmentRepository
	personnel      PersonnelRepository

	today func() types.Date
}

// NewService wires the repositories. today supplies the default purchase
// date and should follow the scheduler's location.
func NewService(
	equipmentTypes TypeRepository,
	equipment EquipmentRepository,
	personnel PersonnelRepository,
	today func() types.Date,
) *Service {
	return &Service{
		equipmentTypes: equipmentTypes,
		equipment:      equipment,
		personnel:      personnel,
		today:          today,
	}
}

// AddEquipment validates the form, resolves the assignee by full name and the
// type by name, creating the type when it is new. An empty assignee leaves the
// item unassigned and an empty purchase date defaults to today.
func (s *Service) AddEquipment(ctx context.Context, form *types.AddEquipmentForm) (*types.EquipmentItem, error) {
	verr := types.NewValidationError()

	typeName := strings.TrimSpace(form.Type)
	if typeName == "" {
		verr.Add("type", "Le type est obligatoire")
	}

	serial := strings.TrimSpace(form.SerialNumber)
	if serial == "" {
		verr.Add("serial_number", "Le numéro de série est obligatoire")
	}

	purchase := optionalDate(verr, "purchase_date", form.PurchaseDate)
	next := optionalDate(verr, "next_check", form.NextCheck)

	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if !purchase.Valid() {
		purchase = s.today()
	}

	item := &types.EquipmentItem{
		SerialNumber:  serial,
		Status:        utils.NonEmptyStringPtr(strings.TrimSpace(form.Status)),
		PurchaseDate:  purchase.Ptr(),
		NextCheckDate: next.Ptr(),
	}

	if name := strings.TrimSpace(form.AssignedTo); name != "" {
		first, last := types.SplitFullName(name)
		assignee, err := s.personnel.FirefighterByName(ctx, first, last)
		switch {
		case errors.Is(err, types.ErrPersonnelNotFound):
			verr.Add("assigned_to", "Personnel non trouvé")
		case errors.Is(err, types.ErrPersonnelAmbiguous):
			verr.Add("assigned_to", "Plusieurs personnes portent ce nom")
		case err != nil:
			return nil, fmt.Errorf("failed to look up assignee: %w", err)
		default:
			item.AssignedTo = utils.StringPtr(assignee.ID)
		}
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	equipmentType, err := s.equipmentTypes.GetOrCreateType(ctx, typeName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve equipment type: %w", err)
	}
	item.TypeID = utils.StringPtr(equipmentType.ID)

	if err := s.equipment.CreateEquipmentItem(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *Service) AddPersonnel(ctx context.Context, form *types.AddPersonnelForm) (*types.Firefighter, error) {
	verr := types.NewValidationError()

	first := strings.TrimSpace(form.FirstName)
	if first == "" {
		verr.Add("first_name", "Le prénom est obligatoire")
	} else if strings.ContainsFunc(first, unicode.IsSpace) {
		verr.Add("first_name", "Le prénom doit être un seul mot")
	}

	last := strings.Join(strings.Fields(form.LastName), " ")
	if last == "" {
		verr.Add("last_name", "Le nom est obligatoire")
	}

	email := strings.TrimSpace(form.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			verr.Add("email", "Adresse email invalide")
		}
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	station := strings.TrimSpace(form.Station)
	if station == "" {
		station = types.DefaultStation
	}

	grade := strings.TrimSpace(form.Grade)
	if grade == "" {
		grade = types.DefaultGrade
	}

	firefighter := &types.Firefighter{
		FirstName: first,
		LastName:  last,
		Email:     utils.NonEmptyStringPtr(email),
		Station:   utils.StringPtr(station),
		Grade:     utils.StringPtr(grade),
	}

	if err := s.personnel.CreateFirefighter(ctx, firefighter); err != nil {
		return nil, err
	}

	return firefighter, nil
}

// optionalDate parses raw when present. The zero Date means absent.
func optionalDate(verr *types.ValidationError, field, raw string) types.Date {
	if strings.TrimSpace(raw) == "" {
		return types.Date{}
	}

	d, err := types.ParseDate(raw)
	if err != nil || !d.Valid() {
		verr.Add(field, "Date invalide")
		return types.Date{}
	}

	return d
}
