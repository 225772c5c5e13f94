// Package server initializes and runs the application server: it opens the
// database, applies migrations, wires the services, and starts the HTTP API
// with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/avlasov/fileshare/internal/logging"
	"github.com/avlasov/fileshare/internal/server/auth"
	"github.com/avlasov/fileshare/internal/server/config"
	"github.com/avlasov/fileshare/internal/server/httpapi"
	"github.com/avlasov/fileshare/internal/server/repositories/repomanager"
	"github.com/avlasov/fileshare/internal/server/services"
)

type App struct {
	config          *config.Config
	logger          logging.Logger
	db              *sql.DB
	tokens          *auth.TokenManager
	userService     *services.UserService
	artifactService *services.ArtifactService
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	tokens := auth.NewTokenManager([]byte(cfg.SecretKey), cfg.TokenValidityDuration)

	us, err := services.NewUserService(db, m, tokens)
	if err != nil {
		return nil, fmt.Errorf("user service init error: %w", err)
	}
	as := services.NewArtifactService(db, m)

	return &App{
		config:          cfg,
		logger:          logger,
		db:              db,
		tokens:          tokens,
		userService:     us,
		artifactService: as,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(app.config.EndpointAddr, app.logger, app.userService, app.artifactService, app.tokens)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
