package server

import (
	"errors"
	"net/http"
	"strings"

	"epitrack/internal/inventory"
	"epitrack/internal/schedule"
	"epitrack/pkg/types"

	"github.com/alexedwards/flow"
)

type EquipmentListPageData struct {
	types.BasePageData
	Query     string
	Equipment []*types.Equipment
}

type EquipmentFormPageData struct {
	types.BasePageData
	Form      *types.AddEquipmentForm
	Errors    *types.ValidationError
	TypeNames []string
	Personnel []*types.Personnel
	Statuses  []string
}

type EquipmentDetailPageData struct {
	types.BasePageData
	Equipment *types.Equipment
	History   []schedule.Entry
}

func (s *Service) handleEquipmentList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	equipment, err := s.stores.Equipment.SearchEquipment(r.Context(), query)
	if err != nil {
		s.storeUnavailable(w, r, err, "équipements")
		return
	}

	data := &EquipmentListPageData{
		BasePageData: types.BasePageData{Title: "Équipements"},
		Query:        query,
		Equipment:    equipment,
	}

	if err := s.renderTemplate(w, r, "page.equipment.list", data); err != nil {
		s.logger.WithError(err).Error("failed to render equipment list")
		s.internalServerError(w)
	}
}

func (s *Service) handleEquipmentNew(w http.ResponseWriter, r *http.Request) {
	s.renderEquipmentForm(w, r, http.StatusOK, &types.AddEquipmentForm{}, nil)
}

func (s *Service) renderEquipmentForm(w http.ResponseWriter, r *http.Request, status int, form *types.AddEquipmentForm, verr *types.ValidationError) {
	ctx := r.Context()

	equipmentTypes, err := s.stores.Types.AllTypes(ctx)
	if err != nil {
		s.storeUnavailable(w, r, err, "types d'équipement")
		return
	}

	personnel, err := s.stores.Personnel.SearchPersonnel(ctx, "")
	if err != nil {
		s.storeUnavailable(w, r, err, "personnels")
		return
	}

	typeNames := make([]string, 0, len(equipmentTypes))
	for _, t := range equipmentTypes {
		typeNames = append(typeNames, t.Name)
	}

	data := &EquipmentFormPageData{
		BasePageData: types.BasePageData{Title: "Ajouter un EPI"},
		Form:         form,
		Errors:       verr,
		TypeNames:    typeNames,
		Personnel:    personnel,
		Statuses:     inventory.Statuses,
	}

	if err := s.renderTemplateStatus(w, r, status, "page.equipment.new", data); err != nil {
		s.logger.WithError(err).Error("failed to render equipment form")
		s.internalServerError(w)
	}
}

func (s *Service) handleEquipmentCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.logger.WithError(err).Error("failed to parse form")
		s.redirectWithError(w, r, "/epi/new", "Formulaire invalide", "Le formulaire n'a pas pu être lu.")
		return
	}

	form := new(types.AddEquipmentForm)
	if err := decoder.Decode(form, r.PostForm); err != nil {
		s.logger.WithError(err).Error("failed to decode form")
		s.internalServerError(w)
		return
	}

	item, err := s.inventory.AddEquipment(r.Context(), form)
	if err != nil {
		var verr *types.ValidationError
		if errors.As(err, &verr) {
			s.renderEquipmentForm(w, r, http.StatusUnprocessableEntity, form, verr)
			return
		}

		s.logger.WithError(err).Error("failed to add equipment")
		s.redirectWithError(w, r, "/epi/new", "Erreur", "Impossible d'ajouter l'équipement. Réessayez.")
		return
	}

	s.redirectWithNotice(w, r, "/epi/"+item.ID, "EPI ajouté", "L'équipement "+item.SerialNumber+" a été ajouté.")
}

func (s *Service) handleEquipmentDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := flow.Param(ctx, "id")

	equipment, err := s.stores.Equipment.EquipmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, types.ErrEquipmentNotFound) {
			s.notFound(w, r, "Cet équipement n'existe pas.")
			return
		}
		s.storeUnavailable(w, r, err, "équipements")
		return
	}

	history, err := s.stores.Verifications.VerificationsByEquipment(ctx, id)
	if err != nil {
		s.storeUnavailable(w, r, err, "vérifications")
		return
	}

	data := &EquipmentDetailPageData{
		BasePageData: types.BasePageData{Title: equipment.Type + " " + equipment.SerialNumber},
		Equipment:    equipment,
		History:      schedule.Classified(history, s.scheduler.Now()),
	}

	if err := s.renderTemplate(w, r, "page.equipment.detail", data); err != nil {
		s.logger.WithError(err).Error("failed to render equipment detail")
		s.internalServerError(w)
	}
}
