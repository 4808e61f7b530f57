package server

import (
	"net/http"
	"strings"

	"epitrack/pkg/types"
)

func (s *Service) setFlash(w http.ResponseWriter, flash *types.Flash) {
	encoded, err := s.cookie.Encode(s.config.FlashCookieName, flash)
	if err != nil {
		s.logger.WithError(err).Error("failed to encode flash message")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.config.FlashCookieName,
		Value:    encoded,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})
}

// popFlash returns the pending flash message and clears it.
func (s *Service) popFlash(w http.ResponseWriter, r *http.Request) *types.Flash {
	cookie, err := r.Cookie(s.config.FlashCookieName)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.config.FlashCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})

	var flash types.Flash
	if err := s.cookie.Decode(s.config.FlashCookieName, cookie.Value, &flash); err != nil {
		s.logger.WithError(err).Debug("discarding unreadable flash cookie")
		return nil
	}

	return &flash
}

func (s *Service) redirectWithNotice(w http.ResponseWriter, r *http.Request, path, title, message string) {
	s.setFlash(w, &types.Flash{Kind: types.FlashNotice, Title: title, Message: message})
	http.Redirect(w, r, path, http.StatusSeeOther)
}

func (s *Service) redirectWithError(w http.ResponseWriter, r *http.Request, path, title, message string) {
	s.setFlash(w, &types.Flash{Kind: types.FlashError, Title: title, Message: message})
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// localPath accepts only same-site absolute paths.
func localPath(path, fallback string) string {
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") || strings.HasPrefix(path, "/\\") {
		return fallback
	}
	return path
}
