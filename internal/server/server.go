package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/itsatony/smartrooms/api"
	"github.com/itsatony/smartrooms/internal/cache"
	"github.com/itsatony/smartrooms/internal/campusservice"
	"github.com/itsatony/smartrooms/internal/config"
	"github.com/itsatony/smartrooms/internal/database"
	"github.com/itsatony/smartrooms/internal/monitoring"
	"github.com/itsatony/smartrooms/internal/repository/files"
	"github.com/itsatony/smartrooms/internal/repository/sqlstore"
	nuts "github.com/vaudience/go-nuts"
)

// App bundles the opened database, cache, campus service and event monitor
type App struct {
	DB         database.DB
	Stats      cache.StatsCache
	Campus     *campusservice.CampusService
	Monitoring *monitoring.Service
}

// Close releases the cache and database connections
func (a *App) Close() {
	if err := a.Stats.Close(); err != nil {
		nuts.L.Warnf("[Server] Error closing cache: %v", err)
	}
	if err := a.DB.Close(); err != nil {
		nuts.L.Warnf("[Server] Error closing database: %v", err)
	}
}

// Bootstrap opens the configured database, applies the schema when
// auto_migrate is set and builds the campus service.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.Ping(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", db.Dialect(), err)
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
	}

	images, err := files.NewImageRepository(files.ImageConfig{
		PublicDir:         cfg.FileStore.PublicDir,
		MaxFileSize:       cfg.FileStore.MaxFileSize,
		AllowedExtensions: cfg.FileStore.AllowedExtensions,
		AllowedMimeTypes:  cfg.FileStore.AllowedMimeTypes,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize image store: %w", err)
	}

	stats := cache.New(cfg.Redis)
	campus := campusservice.New(
		sqlstore.NewAreaRepository(db),
		sqlstore.NewSensorRepository(db),
		sqlstore.NewUserRepository(db),
		images,
		stats,
		cfg.Auth.BcryptCost,
	)
	if err := campus.Validate(); err != nil {
		stats.Close()
		db.Close()
		return nil, err
	}

	mon := monitoring.NewService(monitoring.Config{LogLevel: cfg.Monitoring.LogLevel})
	if err := mon.WatchCleanup(campus.Cleanup); err != nil {
		stats.Close()
		db.Close()
		return nil, err
	}

	nuts.L.Infof("[Server] Using %s database", db.Dialect())
	return &App{DB: db, Stats: stats, Campus: campus, Monitoring: mon}, nil
}

// Server represents our HTTP server
type Server struct {
	config *config.Config
	srv    *http.Server
	app    *App
	router *api.Router
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	return &Server{
		config: cfg,
		srv: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
}

// Start begins listening for requests and blocks until shutdown
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := Bootstrap(ctx, s.config)
	if err != nil {
		return err
	}
	defer app.Close()
	s.app = app

	s.router = api.NewRouter(app.Campus, s.config, app.Monitoring)
	s.router.Limiter().RunSweeper(ctx, time.Minute)
	s.srv.Handler = s.router

	errCh := make(chan error, 1)
	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	return s.waitForShutdown(errCh)
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown(errCh <-chan error) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return fmt.Errorf("error starting server: %w", err)
	case <-quit:
	}

	nuts.L.Infof("[Server] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	nuts.L.Infof("[Server] Server shut down successfully (events: %v)", s.app.Monitoring.Totals())
	return nil
}
