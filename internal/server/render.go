package server

import (
	"bytes"
	"net/http"
	"strings"

	"epitrack/pkg/types"
)

func (s *Service) renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) error {
	return s.renderTemplateStatus(w, r, http.StatusOK, templateName, data)
}

// renderTemplateStatus renders into a buffer first so a template error never
// leaves a half written page behind.
func (s *Service) renderTemplateStatus(w http.ResponseWriter, r *http.Request, status int, templateName string, data any) error {
	if setter, ok := data.(types.PageDataSetter); ok {
		setter.SetNavbarData(types.NavbarData{
			Section:     section(r.URL.Path),
			Environment: s.config.Environment,
		})
		setter.SetFlash(s.popFlash(w, r))
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// section is the first path segment, used to highlight the navbar.
func section(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "dashboard"
	}
	return path
}

type ErrorPageData struct {
	types.BasePageData
	Message  string
	RetryURL string
}

func (s *Service) internalServerError(w http.ResponseWriter) {
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// storeUnavailable renders the error page with a link retrying the request.
func (s *Service) storeUnavailable(w http.ResponseWriter, r *http.Request, err error, what string) {
	s.logger.WithError(err).WithField("path", r.URL.Path).Errorf("failed to load %s", what)

	data := &ErrorPageData{
		BasePageData: types.BasePageData{Title: "Données indisponibles"},
		Message:      "Impossible de charger les " + what + ". Vérifiez la connexion puis réessayez.",
		RetryURL:     r.URL.RequestURI(),
	}

	if err := s.renderTemplateStatus(w, r, http.StatusServiceUnavailable, "page.error", data); err != nil {
		s.logger.WithError(err).Error("failed to render error page")
		s.internalServerError(w)
	}
}

func (s *Service) notFound(w http.ResponseWriter, r *http.Request, message string) {
	data := &ErrorPageData{
		BasePageData: types.BasePageData{Title: "Introuvable"},
		Message:      message,
	}

	if err := s.renderTemplateStatus(w, r, http.StatusNotFound, "page.error", data); err != nil {
		s.logger.WithError(err).Error("failed to render not found page")
		http.NotFound(w, r)
	}
}
