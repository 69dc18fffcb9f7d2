package api

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	apimw "github.com/itsatony/smartrooms/api/middleware"
	"github.com/itsatony/smartrooms/api/resources"
	_ "github.com/itsatony/smartrooms/docs"
	"github.com/itsatony/smartrooms/internal/campusservice"
	"github.com/itsatony/smartrooms/internal/config"
	"github.com/swaggo/swag"
	nuts "github.com/vaudience/go-nuts"
)

type Router struct {
	router    *mux.Router
	handler   http.Handler
	limiter   *apimw.RateLimiter
	resources *resources.Resources
	cfg       *config.Config
}

// NewRouter builds the HTTP API. metrics feeds the health endpoint and may be nil.
func NewRouter(svc *campusservice.CampusService, cfg *config.Config, metrics resources.EventMetrics) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		limiter:   apimw.NewRateLimiter(cfg.Auth.LoginRatePerMinute, cfg.Auth.LoginBurst),
		resources: resources.NewResources(svc, cfg.FileStore.MaxFileSize, metrics),
		cfg:       cfg,
	}

	r.setupRoutes()

	var h http.Handler = r.router
	if cfg.Server.RequestTimeout > 0 {
		h = middleware.Timeout(cfg.Server.RequestTimeout)(h)
	}
	// forwarded headers are client controlled unless a trusted proxy sets them
	if cfg.Server.TrustProxy {
		h = middleware.RealIP(h)
	}
	h = handlers.CORS(
		handlers.AllowedOrigins(cfg.CORS.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(h)
	r.handler = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)
	return r
}

// Limiter exposes the login rate limiter so the server can sweep idle clients
func (r *Router) Limiter() *apimw.RateLimiter {
	return r.limiter
}

func (r *Router) setupRoutes() {
	api := r.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", r.resources.HealthCheck).Methods(http.MethodGet)
	api.HandleFunc("/docs/doc.json", serveDoc).Methods(http.MethodGet)

	// Areas
	areas := api.PathPrefix("/areas").Subrouter()
	areas.HandleFunc("", r.resources.Areas.ListAreas).Methods(http.MethodGet)
	areas.HandleFunc("", r.resources.Areas.CreateArea).Methods(http.MethodPost)
	areas.HandleFunc("/{id}", r.resources.Areas.GetArea).Methods(http.MethodGet)
	areas.HandleFunc("/{id}", r.resources.Areas.UpdateArea).Methods(http.MethodPut)
	areas.HandleFunc("/{id}", r.resources.Areas.DeleteArea).Methods(http.MethodDelete)
	areas.HandleFunc("/{id}/children", r.resources.Areas.ListChildren).Methods(http.MethodGet)

	// Sensor management
	mgmt := api.PathPrefix("/management").Subrouter()
	mgmt.HandleFunc("/sensors-with-areas", r.resources.Management.ListSensorsWithAreas).Methods(http.MethodGet)
	mgmt.HandleFunc("/sensor/{id}/status", r.resources.Management.UpdateSensorStatus).Methods(http.MethodPut)
	mgmt.HandleFunc("/sensor/{id}/coordinates", r.resources.Management.UpdateSensorCoordinates).Methods(http.MethodPut)
	mgmt.HandleFunc("/statistics", r.resources.Management.GetStatistics).Methods(http.MethodGet)

	// Auth
	auth := api.PathPrefix("/auth").Subrouter()
	auth.Handle("/login", r.limiter.Middleware(http.HandlerFunc(r.resources.Auth.Login))).Methods(http.MethodPost)
	auth.HandleFunc("/user/{id}", r.resources.Auth.GetUser).Methods(http.MethodGet)

	// Uploaded images
	assets := staticFiles(filepath.Join(r.cfg.FileStore.PublicDir, "assets"))
	r.router.PathPrefix("/api/assets/").Handler(http.StripPrefix("/api/assets/", assets)).Methods(http.MethodGet, http.MethodHead)
	r.router.PathPrefix("/assets/").Handler(http.StripPrefix("/assets/", assets)).Methods(http.MethodGet, http.MethodHead)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

func serveDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		nuts.L.Errorf("[API] Failed to read OpenAPI document: %v", err)
		http.Error(w, "documentation unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}

// staticFiles serves files below dir without directory listings
func staticFiles(dir string) http.Handler {
	fs := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		fs.ServeHTTP(w, r)
	})
}
