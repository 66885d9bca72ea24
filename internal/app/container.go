package app

import (
	"context"
	"time"

	"ayunova/internal/config"
	"ayunova/internal/database"
	dbpostgres "ayunova/internal/database/postgres"
	"ayunova/internal/domain/profile"
	"ayunova/internal/infrastructure/cache"
	"ayunova/internal/pkg/jwt"
	"ayunova/internal/repository"
	"ayunova/internal/session"
	"ayunova/internal/usecase"
	"ayunova/internal/usecase/profileloader"
	"ayunova/internal/ws"

	"go.uber.org/zap"
)

type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Cache  *cache.Redis

	JWT      jwt.Service
	Sessions *session.Resolver
	Hub      *ws.Hub

	Profiles profile.Repository

	Auth      usecase.AuthUsecase
	User      usecase.UserUsecase
	Dashboard usecase.DashboardUsecase
	SignOut   usecase.SignOutUsecase
}

// NewContainer connects to Postgres and Redis and wires the application.
// Redis is optional: without it the profile cache is bypassed and sign-out
// fails.
func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, logger.Named("postgres"))
	if err != nil {
		return nil, err
	}

	rc := cache.NewRedis(cfg.Redis, logger)
	return Wire(cfg, logger, db, rc), nil
}

// Wire builds the container from already opened resources.
func Wire(cfg config.Config, logger *zap.Logger, db database.DB, rc *cache.Redis) *Container {
	if logger == nil {
		logger = zap.NewNop()
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
	hub := ws.NewHub(logger.Named("ws"))
	sessions := session.NewResolver(jwtSvc, rc, logger.Named("session"))

	users := repository.NewPostgresUserRepository(db)
	profiles := usecase.NewCachedProfiles(
		repository.NewPostgresProfileRepository(db),
		rc,
		cfg.Redis.TTL,
		logger,
	)
	wellness := usecase.NewWellness(repository.NewPostgresWellnessRepository(db))

	dash := usecase.NewDashboardUsecase(profiles, wellness, logger.Named("dashboard"), usecase.DashboardOptions{
		Loader: profileloader.Options{
			FetchTimeout:       cfg.Dashboard.FetchTimeout,
			ResolveWithoutUser: cfg.Dashboard.ResolveWithoutUser,
		},
		SettleTimeout: cfg.Dashboard.SettleTimeout,
	})

	return &Container{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Cache:     rc,
		JWT:       jwtSvc,
		Sessions:  sessions,
		Hub:       hub,
		Profiles:  profiles,
		Auth:      usecase.NewAuthUsecase(users, jwtSvc, sessions),
		User:      usecase.NewUserUsecase(users, profiles),
		Dashboard: dash,
		SignOut:   usecase.NewSignOutUsecase(hub, logger.Named("signout")),
	}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
