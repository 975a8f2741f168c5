package main

import (
	"context"
	"net/http"
	"os"

	"github.com/fleetline/dispatch-backend/api/routes"
	"github.com/fleetline/dispatch-backend/internal/agents"
	"github.com/fleetline/dispatch-backend/internal/cascade"
	"github.com/fleetline/dispatch-backend/internal/jobs"
	"github.com/fleetline/dispatch-backend/internal/notify"
	"github.com/fleetline/dispatch-backend/internal/offers"
	"github.com/fleetline/dispatch-backend/pkg/config"
	"github.com/fleetline/dispatch-backend/pkg/db"
	"github.com/fleetline/dispatch-backend/pkg/logger"
	"github.com/fleetline/dispatch-backend/pkg/migrate"
	"github.com/fleetline/dispatch-backend/pkg/redis"
	"github.com/joho/godotenv"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	agentsRepo := agents.NewRepository(dbClient.DB())
	jobsRepo := jobs.NewRepository(dbClient.DB())
	offersRepo := offers.NewRepository(dbClient.DB())

	notifier, err := notify.New(cfg.Notifier, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create notifier", err)
		os.Exit(1)
	}

	agentsService, err := agents.NewService(agentsRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create agents service", err)
		os.Exit(1)
	}

	jobsService, err := jobs.NewService(jobsRepo, dbClient, cfg.Cascade)
	if err != nil {
		logg.Error(context.Background(), "failed to create jobs service", err)
		os.Exit(1)
	}

	cascadeService, err := cascade.NewService(jobsRepo, offersRepo, agentsRepo, dbClient, notifier, logg, cfg.Cascade)
	if err != nil {
		logg.Error(context.Background(), "failed to create cascade service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:     cfg,
			Logger:     logg,
			DBPinger:   dbClient,
			Redis:      redisClient,
			AgentsSvc:  agentsService,
			JobsSvc:    jobsService,
			JobsRepo:   jobsRepo,
			OffersRepo: offersRepo,
			CascadeSvc: cascadeService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
