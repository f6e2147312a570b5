package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/stockdash/internal/client/api"
	"github.com/dmitrijs2005/stockdash/internal/client/config"
	"github.com/dmitrijs2005/stockdash/internal/client/export"
	"github.com/dmitrijs2005/stockdash/internal/client/models"
	"github.com/dmitrijs2005/stockdash/internal/client/notify"
	"github.com/dmitrijs2005/stockdash/internal/client/router"
	"github.com/dmitrijs2005/stockdash/internal/client/scheduler"
	"github.com/dmitrijs2005/stockdash/internal/client/services"
	"github.com/dmitrijs2005/stockdash/internal/client/session"
	"github.com/dmitrijs2005/stockdash/internal/client/storage"
	"github.com/dmitrijs2005/stockdash/internal/logging"
)

const stopTimeout = 2 * time.Second

type reportUploader interface {
	Enabled() bool
	Upload(ctx context.Context, r export.Report) (string, error)
}

type jobScheduler interface {
	Every(name string, interval time.Duration, fn func(ctx context.Context)) error
	Remove(name string)
	Stop(timeout time.Duration)
}

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	sessions     *session.Manager
	authService  services.AuthService
	adminService services.AdminService
	prefService  services.PreferenceService
	exporter     reportUploader
	scheduler    jobScheduler
	notifier     *notify.Notifier
	reader       *bufio.Reader
	out          io.Writer

	mu       sync.Mutex
	location string
	from     string
	query    models.UserQuery
	users    []models.User
}

// NewApp opens the local database and wires the API client, the session
// manager and the services.
func NewApp(cfg *config.Config, logger logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	ctx := context.Background()

	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", cfg.DatabasePath, "error", err)
		return nil, err
	}

	sessions := session.NewManager(db, logger.With("component", "session"))

	client := api.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, logger.With("component", "api"))
	client.SetTokenSource(sessions.Token)
	client.OnUnauthorized(func(ctx context.Context, err error) {
		if ierr := sessions.Invalidate(ctx, err); ierr != nil {
			logger.Error(ctx, "failed to clear session after 401", "error", ierr)
		}
	})

	a := &App{
		config:       cfg,
		logger:       logger,
		db:           db,
		sessions:     sessions,
		authService:  services.NewAuthService(client, sessions, logger.With("component", "auth")),
		adminService: services.NewAdminService(client, logger.With("component", "admin")),
		prefService:  services.NewPreferenceService(db),
		exporter: export.NewExporter(export.Settings{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		}),
		scheduler: scheduler.New(logger.With("component", "scheduler")),
		notifier:  notify.New(out),
		reader:    bufio.NewReader(in),
		out:       out,
		location:  router.PathHome,
		query:     models.UserQuery{Page: 1, Limit: cfg.PageSize},
	}
	sessions.OnInvalidate(a.onSessionEnded)

	return a, nil
}

// Run blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

// Close stops background jobs and closes the database.
func (a *App) Close() {
	if a.scheduler != nil {
		a.scheduler.Stop(stopTimeout)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error(context.Background(), "failed to close database", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.sessions.Current().Authenticated()
}

func (a *App) currentLocation() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.location
}

func (a *App) setLocation(path string) {
	a.mu.Lock()
	a.location = path
	a.mu.Unlock()
}

// takeFrom returns and clears the location preserved by the login redirect.
func (a *App) takeFrom() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	from := a.from
	a.from = ""
	return from
}

func (a *App) setFrom(path string) {
	a.mu.Lock()
	a.from = path
	a.mu.Unlock()
}

func (a *App) currentQuery() models.UserQuery {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.query
}

func (a *App) getStatus() string {
	s := a.sessions.Current()
	loc := a.currentLocation()
	if u, ok := s.User(); ok {
		return fmt.Sprintf("(%s %s) %s", u.Email, u.Role, loc)
	}
	return loc
}

// onSessionEnded runs after the session manager tore the session down. It
// stops session-bound jobs and moves to the login view, keeping the current
// location so the next login can return to it. Notices are left to the
// caller that observed the failure.
func (a *App) onSessionEnded(ctx context.Context, reason error) {
	a.scheduler.Remove(scheduler.JobDashboardRefresh)
	a.scheduler.Remove(scheduler.JobExpiryCheck)

	a.mu.Lock()
	if r, ok := router.Lookup(a.location); ok && r.Access == router.Gated {
		a.from = r.Path
	}
	a.location = router.PathLogin
	a.mu.Unlock()

	a.logger.Info(ctx, "session ended", "reason", reason)
}

// startExpiryWatch polls token validity while a session is active.
func (a *App) startExpiryWatch() {
	err := a.scheduler.Every(scheduler.JobExpiryCheck, a.config.ExpiryCheckInterval, func(ctx context.Context) {
		if _, err := a.sessions.Validate(ctx); err != nil {
			a.handleError(ctx, err)
		}
	})
	if err != nil {
		a.logger.Warn(context.Background(), "failed to schedule expiry check", "error", err)
	}
}
