// @title                       TimeTracker API
// @version                     1.0
// @description                 Multi-tenant time tracking: users log hours against projects, admins manage users, roles and projects.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/onevoker/TimeTracker/internal/api"
	"github.com/onevoker/TimeTracker/internal/api/handler"
	"github.com/onevoker/TimeTracker/internal/core/domain"
	"github.com/onevoker/TimeTracker/internal/core/ports"
	"github.com/onevoker/TimeTracker/internal/core/service"
	"github.com/onevoker/TimeTracker/internal/infrastructure/config"
	mongodb "github.com/onevoker/TimeTracker/internal/infrastructure/db/mongo"
	redisdb "github.com/onevoker/TimeTracker/internal/infrastructure/db/redis"
	"github.com/onevoker/TimeTracker/internal/infrastructure/queue"
	"github.com/onevoker/TimeTracker/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log := logger.Init(logger.Options{})
		log.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.IsDevelopment(), Env: cfg.Env})
	log.Info().Msg("starting timetracker")

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	users := mongodb.NewUserRepository(db)
	roles := mongodb.NewRoleRepository(db)
	projects := mongodb.NewProjectRepository(db)
	records := mongodb.NewRecordRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)

	if err := roles.Seed(ctx, domain.RoleUser, domain.RoleAdmin); err != nil {
		log.Fatal().Err(err).Msg("failed to seed roles")
	}

	owners := redisdb.NewOwnerCache(rdb, records, cfg.Redis.OwnerCacheTTL, log)

	dispatcher := queue.NewDispatcher(cfg.Activity.Workers, activityRepo, log)
	dispatcher.Start(ctx)

	// --- Core ---
	claims := service.ClaimNames{Username: cfg.JWT.UsernameClaim, Roles: cfg.JWT.RolesClaim}
	codec, err := service.NewTokenCodec(cfg.JWT.Secret, cfg.JWT.TokenLifetime, claims)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid token settings")
	}
	extractor := service.NewPrincipalExtractor(claims)
	hasher := service.NewPasswordHasher(bcrypt.DefaultCost)

	authService := service.NewAuthService(users, roles, codec, hasher, dispatcher)
	roleService := service.NewRoleService(users, roles, hasher, dispatcher, log)
	userService := service.NewUserService(users, projects, records, hasher, dispatcher, log)
	projectService := service.NewProjectService(projects, users, records, dispatcher, log)
	recordService := service.NewRecordService(records, users, projects, owners, dispatcher)
	verifier := service.NewVerifyService(owners)

	bootstrapAdmin(ctx, cfg.Bootstrap, roleService, log)

	e := api.NewRouter(api.Deps{
		Log:      log,
		Tokens:   codec,
		Claims:   extractor,
		Auth:     authService,
		Users:    userService,
		Projects: projectService,
		Records:  recordService,
		Roles:    roleService,
		Verifier: verifier,
		Activity: activityRepo,
		Health: map[string]handler.Pinger{
			"mongo": mongodb.NewPinger(mongoClient),
			"redis": redisdb.NewPinger(rdb),
		},
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}
	dispatcher.Stop()
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close")
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect")
	}
	log.Info().Msg("server shutdown gracefully")
}

// bootstrapAdmin creates the configured admin account once. An existing
// account with that username is left untouched.
func bootstrapAdmin(ctx context.Context, cfg config.BootstrapConfig, roles ports.RoleService, log zerolog.Logger) {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return
	}
	msg, err := roles.CreateUserWithRole(ctx, cfg.AdminUsername, cfg.AdminPassword, domain.RoleAdmin)
	switch {
	case errors.Is(err, domain.ErrDuplicateUser):
		log.Info().Str("username", cfg.AdminUsername).Msg("bootstrap admin already exists")
	case err != nil:
		log.Fatal().Err(err).Msg("failed to create bootstrap admin")
	default:
		log.Info().Msg(msg)
	}
}
