package server

import (
	"errors"
	"net/http"
	"strings"

	"epitrack/internal/schedule"
	"epitrack/pkg/types"

	"github.com/alexedwards/flow"
)

type PersonnelListPageData struct {
	types.BasePageData
	Query     string
	Personnel []*types.Personnel
}

type PersonnelFormPageData struct {
	types.BasePageData
	Form   *types.AddPersonnelForm
	Errors *types.ValidationError
	Grades []string
}

type PersonnelDetailPageData struct {
	types.BasePageData
	Person        *types.Personnel
	Equipment     []*types.Equipment
	Verifications []schedule.Entry
}

func (s *Service) handlePersonnelList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	personnel, err := s.stores.Personnel.SearchPersonnel(r.Context(), query)
	if err != nil {
		s.storeUnavailable(w, r, err, "personnels")
		return
	}

	data := &PersonnelListPageData{
		BasePageData: types.BasePageData{Title: "Personnel"},
		Query:        query,
		Personnel:    personnel,
	}

	if err := s.renderTemplate(w, r, "page.personnel.list", data); err != nil {
		s.logger.WithError(err).Error("failed to render personnel list")
		s.internalServerError(w)
	}
}

func (s *Service) handlePersonnelNew(w http.ResponseWriter, r *http.Request) {
	s.renderPersonnelForm(w, r, http.StatusOK, &types.AddPersonnelForm{}, nil)
}

func (s *Service) renderPersonnelForm(w http.ResponseWriter, r *http.Request, status int, form *types.AddPersonnelForm, verr *types.ValidationError) {
	data := &PersonnelFormPageData{
		BasePageData: types.BasePageData{Title: "Ajouter un sapeur-pompier"},
		Form:         form,
		Errors:       verr,
		Grades:       types.Grades,
	}

	if err := s.renderTemplateStatus(w, r, status, "page.personnel.new", data); err != nil {
		s.logger.WithError(err).Error("failed to render personnel form")
		s.internalServerError(w)
	}
}

func (s *Service) handlePersonnelCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.logger.WithError(err).Error("failed to parse form")
		s.redirectWithError(w, r, "/personnel/new", "Formulaire invalide", "Le formulaire n'a pas pu être lu.")
		return
	}

	form := new(types.AddPersonnelForm)
	if err := decoder.Decode(form, r.PostForm); err != nil {
		s.logger.WithError(err).Error("failed to decode form")
		s.internalServerError(w)
		return
	}

	firefighter, err := s.inventory.AddPersonnel(r.Context(), form)
	if err != nil {
		var verr *types.ValidationError
		if errors.As(err, &verr) {
			s.renderPersonnelForm(w, r, http.StatusUnprocessableEntity, form, verr)
			return
		}

		s.logger.WithError(err).Error("failed to add personnel")
		s.redirectWithError(w, r, "/personnel/new", "Erreur", "Impossible d'ajouter ce sapeur-pompier. Réessayez.")
		return
	}

	name := types.FullName(firefighter.FirstName, firefighter.LastName)
	s.redirectWithNotice(w, r, "/personnel/"+firefighter.ID, "Personnel ajouté", name+" a été ajouté.")
}

func (s *Service) handlePersonnelDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := flow.Param(ctx, "id")

	person, err := s.stores.Personnel.PersonnelByID(ctx, id)
	if err != nil {
		if errors.Is(err, types.ErrPersonnelNotFound) {
			s.notFound(w, r, "Ce sapeur-pompier n'existe pas.")
			return
		}
		s.storeUnavailable(w, r, err, "personnels")
		return
	}

	equipment, err := s.stores.Equipment.EquipmentByAssignee(ctx, id)
	if err != nil {
		s.storeUnavailable(w, r, err, "équipements")
		return
	}

	verifications, err := s.stores.Verifications.VerificationsByAssignee(ctx, id)
	if err != nil {
		s.storeUnavailable(w, r, err, "vérifications")
		return
	}

	data := &PersonnelDetailPageData{
		BasePageData:  types.BasePageData{Title: person.FullName()},
		Person:        person,
		Equipment:     equipment,
		Verifications: schedule.Classified(verifications, s.scheduler.Now()),
	}

	if err := s.renderTemplate(w, r, "page.personnel.detail", data); err != nil {
		s.logger.WithError(err).Error("failed to render personnel detail")
		s.internalServerError(w)
	}
}
