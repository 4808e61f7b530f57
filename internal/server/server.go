package server

import (
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"epitrack/internal/inventory"
	"epitrack/internal/schedule"
	"epitrack/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"
)

//go:embed templates static
var uiFS embed.FS
var decoder = form.NewDecoder()

type EquipmentStore interface {
	SearchEquipment(ctx context.Context, term string) ([]*types.Equipment, error)
	EquipmentByID(ctx context.Context, id string) (*types.Equipment, error)
	EquipmentByAssignee(ctx context.Context, firefighterID string) ([]*types.Equipment, error)
	CountEquipment(ctx context.Context) (int, error)
}

type PersonnelStore interface {
	SearchPersonnel(ctx context.Context, term string) ([]*types.Personnel, error)
	PersonnelByID(ctx context.Context, id string) (*types.Personnel, error)
}

type VerificationStore interface {
	VerificationsByEquipment(ctx context.Context, equipmentID string) ([]*types.Verification, error)
	VerificationsByAssignee(ctx context.Context, firefighterID string) ([]*types.Verification, error)
}

type TypeStore interface {
	AllTypes(ctx context.Context) ([]*types.EquipmentType, error)
}

// Stores are the read paths the pages use. Writes go through the schedule
// and inventory services.
type Stores struct {
	Equipment     EquipmentStore
	Personnel     PersonnelStore
	Verifications VerificationStore
	Types         TypeStore
}

type Service struct {
	logger    *logrus.Logger
	config    *types.Config
	templates *template.Template
	cookie    *securecookie.SecureCookie

	stores    Stores
	scheduler *schedule.Service
	inventory *inventory.Service

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	stores Stores,
	scheduler *schedule.Service,
	inventory *inventory.Service,
) (*Service, error) {
	mux := flow.New()

	s := &Service{
		logger:    logger,
		config:    config,
		cookie:    newSecureCookie(config, logger),
		stores:    stores,
		scheduler: scheduler,
		inventory: inventory,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	s.templates = templates

	s.buildRouter(mux)
	// Unmatched paths never reach flow middleware, so the redirect wraps the mux.
	s.server.Handler = s.StripTrailingSlash(mux)

	return s, nil
}

// newSecureCookie falls back to random keys when none are configured, which
// only costs pending flash messages on restart.
func newSecureCookie(config *types.Config, logger *logrus.Logger) *securecookie.SecureCookie {
	hashKey, _ := base64.StdEncoding.DecodeString(config.CookieHashKey)
	blockKey, _ := base64.StdEncoding.DecodeString(config.CookieBlockKey)

	if len(hashKey) == 0 {
		logger.Warn("COOKIE_HASH_KEY not set, using a random key")
		hashKey = securecookie.GenerateRandomKey(32)
	}

	switch len(blockKey) {
	case 16, 24, 32:
	default:
		if config.CookieBlockKey != "" {
			logger.Warn("COOKIE_BLOCK_KEY has an invalid length, using a random key")
		}
		blockKey = securecookie.GenerateRandomKey(32)
	}

	cookie := securecookie.New(hashKey, blockKey)
	cookie.SetSerializer(securecookie.JSONEncoder{})
	cookie.MaxAge(int((10 * time.Minute).Seconds()))

	return cookie
}

func (s *Service) Handler() http.Handler {
	return s.server.Handler
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/", s.handleDashboard, http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	r.HandleFunc("/epi", s.handleEquipmentList, http.MethodGet)
	r.HandleFunc("/epi", s.handleEquipmentCreate, http.MethodPost)
	r.HandleFunc("/epi/new", s.handleEquipmentNew, http.MethodGet)
	r.HandleFunc("/epi/:id", s.handleEquipmentDetail, http.MethodGet)

	r.HandleFunc("/personnel", s.handlePersonnelList, http.MethodGet)
	r.HandleFunc("/personnel", s.handlePersonnelCreate, http.MethodPost)
	r.HandleFunc("/personnel/new", s.handlePersonnelNew, http.MethodGet)
	r.HandleFunc("/personnel/:id", s.handlePersonnelDetail, http.MethodGet)

	r.HandleFunc("/verifications", s.handleVerifications, http.MethodGet)
	r.HandleFunc("/verifications", s.handleVerificationCreate, http.MethodPost)
	r.HandleFunc("/verifications/new", s.handleVerificationNew, http.MethodGet)
	r.HandleFunc("/verifications/:id/complete", s.handleVerificationComplete, http.MethodPost)

	staticRoot, err := fs.Sub(uiFS, "static")
	if err != nil {
		s.logger.WithError(err).Fatal("failed to mount static assets")
	}
	r.Handle("/static/...", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))), http.MethodGet)
}

func loadTemplates() (*template.Template, error) {
	t := template.New("").Funcs(templateFuncs())
	err := fs.WalkDir(uiFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		data, err := fs.ReadFile(uiFS, path)
		if err != nil {
			return fmt.Errorf("read template %s: %w", path, err)
		}

		if _, err := t.Parse(string(data)); err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}
