package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"epitrack/internal/utils"
	"epitrack/pkg/types"
)

type CheckRepository interface {
	Verifications(ctx context.Context) ([]*types.Verification, error)
	Check(ctx context.Context, id string) (*types.EquipmentCheck, error)
	ScheduleCheck(ctx context.Context, check *types.EquipmentCheck) error
	CompleteCheck(ctx context.Context, id, itemID string, day types.Date) error
}

type EquipmentRepository interface {
	EquipmentItem(ctx context.Context, id string) (*types.EquipmentItem, error)
	EquipmentItemBySerial(ctx context.Context, serial string) (*types.EquipmentItem, error)
}

type PersonnelRepository interface {
	FirefighterByName(ctx context.Context, firstName, lastName string) (*types.Firefighter, error)
}

// Service runs the verification workflows against the store: reading the
// agenda, scheduling a check and marking one done.
type Service struct {
	checks    CheckRepository
	equipment EquipmentRepository
	personnel PersonnelRepository

	clock         Clock
	location      *time.Location
	upcomingLimit int
}

func NewService(
	checks CheckRepository,
	equipment EquipmentRepository,
	personnel PersonnelRepository,
	clock Clock,
	location *time.Location,
	upcomingLimit int,
) *Service {
	if clock == nil {
		clock = SystemClock
	}
	if location == nil {
		location = time.Local
	}

	return &Service{
		checks:        checks,
		equipment:     equipment,
		personnel:     personnel,
		clock:         clock,
		location:      location,
		upcomingLimit: upcomingLimit,
	}
}

// Now is the clock's instant in the configured location.
func (s *Service) Now() time.Time {
	return s.clock.Now().In(s.location)
}

func (s *Service) Today() types.Date {
	return types.DateOf(s.Now())
}

func (s *Service) Location() *time.Location {
	return s.location
}

func (s *Service) fetch(ctx context.Context) ([]*types.Verification, error) {
	records, err := s.checks.Verifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrStoreUnavailable, err)
	}
	return records, nil
}

// Agenda fetches every verification and derives the views for selected. An
// invalid selected date means today.
func (s *Service) Agenda(ctx context.Context, selected types.Date) (*Agenda, error) {
	records, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	return BuildAgenda(records, selected, s.Now(), s.upcomingLimit), nil
}

func (s *Service) Report(ctx context.Context) (*Report, error) {
	records, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	return BuildReport(records, s.Now()), nil
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	records, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	return BuildSummary(records, s.Now(), s.upcomingLimit), nil
}

type ScheduleRequest struct {
	EquipmentRef     string
	VerificationType string
	ScheduledDate    string
	AssignedTo       string
	Priority         string
	Notes            string
}

func RequestFromForm(f *types.ScheduleVerificationForm) ScheduleRequest {
	return ScheduleRequest{
		EquipmentRef:     f.EquipmentRef,
		VerificationType: f.VerificationType,
		ScheduledDate:    f.ScheduledDate,
		AssignedTo:       f.AssignedTo,
		Priority:         f.Priority,
		Notes:            f.Notes,
	}
}

// Form field names used as ValidationError keys.
const (
	FieldEquipment = "epi_id"
	FieldDate      = "scheduled_date"
	FieldAssignee  = "assigned_to"
	FieldPriority  = "priority"
)

// Schedule validates req, resolves the equipment and the assignee, and
// records a planned check. Unknown references come back as a
// *types.ValidationError and nothing is written. The store moves the
// equipment's next check date to the new date, when it is unset or later, in
// the same write as the check.
func (s *Service) Schedule(ctx context.Context, req ScheduleRequest) (*types.EquipmentCheck, error) {
	verr := types.NewValidationError()

	ref := strings.TrimSpace(req.EquipmentRef)
	if ref == "" {
		verr.Add(FieldEquipment, "L'identifiant de l'EPI est obligatoire")
	}

	var date types.Date
	if strings.TrimSpace(req.ScheduledDate) == "" {
		verr.Add(FieldDate, "La date est obligatoire")
	} else {
		d, err := types.ParseDate(req.ScheduledDate)
		if err != nil || !d.Valid() {
			verr.Add(FieldDate, "Date invalide")
		}
		date = d
	}

	firstName, lastName := types.SplitFullName(req.AssignedTo)
	if firstName == "" {
		verr.Add(FieldAssignee, "Le responsable est obligatoire")
	}

	priority := types.PriorityNormal
	if strings.TrimSpace(req.Priority) != "" {
		priority = types.ParsePriority(req.Priority)
		if priority == types.PriorityOther {
			verr.Add(FieldPriority, "Priorité inconnue")
		}
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	item, err := s.resolveEquipment(ctx, ref)
	if errors.Is(err, types.ErrEquipmentNotFound) {
		verr.Add(FieldEquipment, "Équipement non trouvé")
	} else if err != nil {
		return nil, err
	}

	assignee, err := s.personnel.FirefighterByName(ctx, firstName, lastName)
	switch {
	case errors.Is(err, types.ErrPersonnelNotFound):
		verr.Add(FieldAssignee, "Personnel non trouvé")
	case errors.Is(err, types.ErrPersonnelAmbiguous):
		verr.Add(FieldAssignee, "Plusieurs personnes portent ce nom")
	case err != nil:
		return nil, fmt.Errorf("failed to look up assignee: %w", err)
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	verificationType := strings.TrimSpace(req.VerificationType)
	if verificationType == "" {
		verificationType = types.DefaultVerificationType
	}

	check := &types.EquipmentCheck{
		EquipmentItemID:  item.ID,
		CheckedBy:        utils.StringPtr(assignee.ID),
		CheckDate:        date.Ptr(),
		NextCheckDate:    date.Ptr(),
		Result:           utils.StringPtr(types.CheckResultPlanned),
		Notes:            utils.StringPtr(strings.TrimSpace(req.Notes)),
		VerificationType: utils.StringPtr(verificationType),
		Priority:         utils.StringPtr(string(priority)),
	}

	if err := s.checks.ScheduleCheck(ctx, check); err != nil {
		return nil, fmt.Errorf("failed to schedule check: %w", err)
	}

	return check, nil
}

// resolveEquipment accepts a serial number, falling back to an item id.
func (s *Service) resolveEquipment(ctx context.Context, ref string) (*types.EquipmentItem, error) {
	item, err := s.equipment.EquipmentItemBySerial(ctx, ref)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, types.ErrEquipmentNotFound) {
		return nil, fmt.Errorf("failed to look up equipment: %w", err)
	}

	item, err = s.equipment.EquipmentItem(ctx, ref)
	if err != nil && !errors.Is(err, types.ErrEquipmentNotFound) {
		return nil, fmt.Errorf("failed to look up equipment: %w", err)
	}

	return item, err
}

// Complete marks a check done and stamps today as the equipment's last
// check date in one write. Completing a done check is a no-op.
func (s *Service) Complete(ctx context.Context, checkID string) error {
	check, err := s.checks.Check(ctx, checkID)
	if err != nil {
		return err
	}

	if types.ParseCheckStatus(utils.PtrString(check.Result)).Done() {
		return nil
	}

	err = s.checks.CompleteCheck(ctx, check.ID, check.EquipmentItemID, s.Today())
	return utils.ErrorWrapOrNil(err, "failed to complete check")
}
