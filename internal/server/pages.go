package server

import (
	"net/http"

	"epitrack/internal/schedule"
	"epitrack/pkg/types"
)

type DashboardPageData struct {
	types.BasePageData
	Today          types.Date
	EquipmentCount int
	PersonnelCount int
	Summary        *schedule.Summary
}

func (s *Service) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	equipmentCount, err := s.stores.Equipment.CountEquipment(ctx)
	if err != nil {
		s.storeUnavailable(w, r, err, "statistiques")
		return
	}

	personnel, err := s.stores.Personnel.SearchPersonnel(ctx, "")
	if err != nil {
		s.storeUnavailable(w, r, err, "statistiques")
		return
	}

	summary, err := s.scheduler.Summary(ctx)
	if err != nil {
		s.storeUnavailable(w, r, err, "vérifications")
		return
	}
	s.warnSkipped(summary.Skipped)

	data := &DashboardPageData{
		BasePageData:   types.BasePageData{Title: "Tableau de bord"},
		Today:          summary.Today,
		EquipmentCount: equipmentCount,
		PersonnelCount: len(personnel),
		Summary:        summary,
	}

	if err := s.renderTemplate(w, r, "page.dashboard", data); err != nil {
		s.logger.WithError(err).Error("failed to render dashboard")
		s.internalServerError(w)
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Service) warnSkipped(skipped int) {
	if skipped > 0 {
		s.logger.WithField("skipped", skipped).Warn("verifications without a valid date were left out")
	}
}
