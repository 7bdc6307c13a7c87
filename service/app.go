package service

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"quill/app/auth"
	"quill/app/config"
	"quill/app/logging"
	"quill/app/metrics"
	"quill/app/middleware"
	"quill/app/repositories"
	"quill/app/routes"
	"quill/app/views"
)

const shutdownTimeout = 10 * time.Second

// App is a fully wired blog server.
type App struct {
	Config   config.Config
	Log      *logrus.Logger
	DB       *gorm.DB
	Sessions *auth.Store
	Handler  http.Handler

	limiter *middleware.RateLimiter
}

// NewApp opens the database and session store and builds the router.
func NewApp(cfg config.Config, log *logrus.Logger) (*App, error) {
	db, err := repositories.Open(cfg.DB.URI, log)
	if err != nil {
		return nil, err
	}
	if err := repositories.Migrate(db); err != nil {
		repositories.Close(db)
		return nil, err
	}

	if cfg.Session.Dir != "" {
		if err := os.MkdirAll(cfg.Session.Dir, 0o755); err != nil {
			repositories.Close(db)
			return nil, fmt.Errorf("failed to create session directory: %w", err)
		}
	}
	store, err := auth.OpenStore(cfg.Session.Dir, cfg.Session.TTL)
	if err != nil {
		repositories.Close(db)
		return nil, err
	}

	renderer, err := views.New()
	if err != nil {
		store.Close()
		repositories.Close(db)
		return nil, err
	}

	sessions := auth.NewManager(store, cfg.Session.Secret)
	sessions.Secure = cfg.IsProduction()
	limiter := middleware.NewRateLimiter(cfg.Limits.LoginRate, cfg.Limits.LoginBurst, log)

	router := routes.Setup(routes.Deps{
		Users:    repositories.NewGormUserRepository(db),
		Posts:    repositories.NewGormPostRepository(db),
		Comments: repositories.NewGormCommentRepository(db),
		Sessions: sessions,
		Views:    renderer,
		Log:      log,
		Metrics:  metrics.New(),
		Limiter:  limiter,
		Ping:     func() error { return repositories.Ping(db) },
	})

	return &App{
		Config:   cfg,
		Log:      log,
		DB:       db,
		Sessions: store,
		Handler:  router,
		limiter:  limiter,
	}, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         a.Config.HTTP.Addr,
		Handler:      a.Handler,
		ReadTimeout:  a.Config.HTTP.ReadTimeout,
		WriteTimeout: a.Config.HTTP.WriteTimeout,
		IdleTimeout:  a.Config.HTTP.IdleTimeout,
	}

	stop := make(chan struct{})
	defer close(stop)
	a.limiter.StartCleanup(time.Minute, stop)

	errCh := make(chan error, 1)
	go func() {
		a.Log.WithField("addr", srv.Addr).Info("starting blog server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// Close releases the database and the session store.
func (a *App) Close() error {
	return errors.Join(a.Sessions.Close(), repositories.Close(a.DB))
}

// RunAppServer starts the blog service and blocks until SIGINT or SIGTERM.
func RunAppServer(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", "", "listen address, overrides HTTP_ADDR")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		return 1
	}
	if *addr != "" {
		cfg.HTTP.Addr = *addr
	}

	log := logging.New(cfg.App.Env, cfg.App.LogLevel)
	app, err := NewApp(cfg, log)
	if err != nil {
		log.WithError(err).Error("failed to start")
		return 1
	}
	defer app.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx); err != nil {
		log.WithError(err).Error("server stopped")
		return 1
	}
	return 0
}
