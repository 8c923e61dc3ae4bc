package app

import (
	"context"
	"fmt"

	"github.com/casting-agency/api/auth"
	"github.com/casting-agency/api/auth0"
	"github.com/casting-agency/api/config"
	"github.com/casting-agency/api/handlers"
	"github.com/casting-agency/api/middleware"
	"github.com/casting-agency/api/repositories"
	"github.com/casting-agency/api/repositories/postgres"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection; the
// signing-key cache in particular lives here rather than in package
// state so it can be replaced in tests.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repositories
	Actors repositories.ActorRepository
	Movies repositories.MovieRepository

	// Authorization core
	KeyCache       *auth0.KeyCache
	Validator      *auth0.Validator
	AuthMiddleware *middleware.AuthMiddleware

	// Handlers
	ActorHandler  *handlers.ActorHandler
	MovieHandler  *handlers.MovieHandler
	HealthHandler *handlers.HealthHandler
	AuthHandler   *auth.Handler
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps.initAuth(cfg)
	deps.initHandlers(cfg)

	logger.Info("all dependencies initialized")
	return deps, nil
}

// initDatabase initializes the PostgreSQL connection, schema, and repositories
func (d *Dependencies) initDatabase(ctx context.Context, cfg *config.Config) error {
	db, err := postgres.NewDB(cfg.Database, d.Logger)
	if err != nil {
		return err
	}
	d.DB = db

	if err := db.InitSchema(ctx); err != nil {
		return err
	}

	d.Actors = postgres.NewActorRepository(db, d.Logger)
	d.Movies = postgres.NewMovieRepository(db, d.Logger)
	return nil
}

// initAuth wires the signing-key cache, token validator, and middleware gate
func (d *Dependencies) initAuth(cfg *config.Config) {
	d.KeyCache = auth0.NewKeyCache(auth0.KeyCacheConfig{
		Domain:      cfg.Auth0.Domain,
		CacheTTL:    cfg.Auth0.JWKSCacheTTL,
		HTTPTimeout: cfg.Auth0.HTTPTimeout,
	})
	d.Validator = auth0.NewValidator(cfg.Auth0.Domain, cfg.Auth0.Audience, d.KeyCache)
	d.AuthMiddleware = middleware.NewAuthMiddleware(d.Validator, d.Logger)
}

// initHandlers builds HTTP handlers over the repositories
func (d *Dependencies) initHandlers(cfg *config.Config) {
	d.ActorHandler = handlers.NewActorHandler(d.Actors, d.Logger)
	d.MovieHandler = handlers.NewMovieHandler(d.Movies, d.Logger)
	d.HealthHandler = handlers.NewHealthHandler(d.DB, d.Logger)
	d.AuthHandler = auth.NewHandler(cfg.Auth0, auth.NewCodeExchanger(cfg.Auth0), d.Validator, d.Logger)
}

// Close releases held resources
func (d *Dependencies) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
