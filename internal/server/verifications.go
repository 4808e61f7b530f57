package server

import (
	"errors"
	"net/http"
	"strings"

	"epitrack/internal/schedule"
	"epitrack/pkg/types"

	"github.com/alexedwards/flow"
)

type VerificationsPageData struct {
	types.BasePageData
	Agenda         *schedule.Agenda
	OverduePreview int
}

type VerificationFormPageData struct {
	types.BasePageData
	Form              *types.ScheduleVerificationForm
	Errors            *types.ValidationError
	VerificationTypes []string
	Priorities        []types.Priority
	Personnel         []*types.Personnel
}

// handleVerifications renders the calendar for ?date=, today when the
// parameter is missing or unreadable.
func (s *Service) handleVerifications(w http.ResponseWriter, r *http.Request) {
	selected, _ := types.ParseDate(r.URL.Query().Get("date"))

	agenda, err := s.scheduler.Agenda(r.Context(), selected)
	if err != nil {
		s.storeUnavailable(w, r, err, "vérifications")
		return
	}
	s.warnSkipped(agenda.Skipped)

	data := &VerificationsPageData{
		BasePageData:   types.BasePageData{Title: "Vérifications"},
		Agenda:         agenda,
		OverduePreview: s.config.OverduePreview,
	}

	if err := s.renderTemplate(w, r, "page.verifications", data); err != nil {
		s.logger.WithError(err).Error("failed to render verifications")
		s.internalServerError(w)
	}
}

func (s *Service) handleVerificationNew(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	form := &types.ScheduleVerificationForm{
		EquipmentRef:     strings.TrimSpace(q.Get("epi")),
		VerificationType: types.DefaultVerificationType,
		Priority:         string(types.PriorityNormal),
	}

	date, err := types.ParseDate(q.Get("date"))
	if err != nil {
		date = s.scheduler.Today()
	}
	form.ScheduledDate = date.String()

	s.renderVerificationForm(w, r, http.StatusOK, form, nil)
}

func (s *Service) renderVerificationForm(w http.ResponseWriter, r *http.Request, status int, form *types.ScheduleVerificationForm, verr *types.ValidationError) {
	personnel, err := s.stores.Personnel.SearchPersonnel(r.Context(), "")
	if err != nil {
		s.storeUnavailable(w, r, err, "personnels")
		return
	}

	data := &VerificationFormPageData{
		BasePageData:      types.BasePageData{Title: "Programmer une vérification"},
		Form:              form,
		Errors:            verr,
		VerificationTypes: types.VerificationTypes,
		Priorities:        types.Priorities,
		Personnel:         personnel,
	}

	if err := s.renderTemplateStatus(w, r, status, "page.verifications.new", data); err != nil {
		s.logger.WithError(err).Error("failed to render verification form")
		s.internalServerError(w)
	}
}

func (s *Service) handleVerificationCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.logger.WithError(err).Error("failed to parse form")
		s.redirectWithError(w, r, "/verifications/new", "Formulaire invalide", "Le formulaire n'a pas pu être lu.")
		return
	}

	form := new(types.ScheduleVerificationForm)
	if err := decoder.Decode(form, r.PostForm); err != nil {
		s.logger.WithError(err).Error("failed to decode form")
		s.internalServerError(w)
		return
	}

	check, err := s.scheduler.Schedule(r.Context(), schedule.RequestFromForm(form))
	if err != nil {
		var verr *types.ValidationError
		if errors.As(err, &verr) {
			s.renderVerificationForm(w, r, http.StatusUnprocessableEntity, form, verr)
			return
		}

		s.logger.WithError(err).Error("failed to schedule verification")
		s.redirectWithError(w, r, "/verifications/new", "Erreur", "Impossible de programmer la vérification. Réessayez.")
		return
	}

	date := types.DateFromPtr(check.CheckDate)
	s.redirectWithNotice(w, r, "/verifications?date="+date.String(),
		"Vérification programmée", "La vérification a été programmée pour le "+shortDate(date)+".")
}

func (s *Service) handleVerificationComplete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := flow.Param(ctx, "id")

	if err := r.ParseForm(); err != nil {
		s.logger.WithError(err).Error("failed to parse form")
	}
	returnTo := localPath(r.PostForm.Get("return_to"), "/verifications")

	err := s.scheduler.Complete(ctx, id)
	if err != nil {
		if errors.Is(err, types.ErrVerificationNotFound) {
			s.notFound(w, r, "Cette vérification n'existe pas.")
			return
		}

		s.logger.WithError(err).WithField("check_id", id).Error("failed to complete verification")
		s.redirectWithError(w, r, returnTo, "Erreur", "Impossible de terminer la vérification. Réessayez.")
		return
	}

	s.redirectWithNotice(w, r, returnTo, "Vérification terminée", "La vérification a été marquée comme terminée.")
}
