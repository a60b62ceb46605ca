package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-seating/internal/app"
	"github.com/metinatakli/cinema-seating/internal/clock"
	"github.com/metinatakli/cinema-seating/internal/customer"
	"github.com/metinatakli/cinema-seating/internal/domain"
	"github.com/metinatakli/cinema-seating/internal/pricing"
	"github.com/metinatakli/cinema-seating/internal/repository"
	"github.com/metinatakli/cinema-seating/internal/showing"
	appvalidator "github.com/metinatakli/cinema-seating/internal/validator"
	"github.com/metinatakli/cinema-seating/internal/vcs"
	"github.com/redis/go-redis/v9"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	err := run(logger)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, displayVersion, err := app.ParseConfig(os.Args[1:])
	if err != nil {
		return err
	}

	if displayVersion {
		fmt.Printf("Version:\t%s\n", vcs.Version())
		os.Exit(0)
	}

	shutdownTelemetry, err := app.InitTelemetry(cfg, logger)
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	pricingCfg, err := cfg.PricingConfig()
	if err != nil {
		return err
	}

	policy, err := pricing.New(pricingCfg)
	if err != nil {
		return err
	}

	ticketBook := customer.NewTicketBook()

	deps := app.ShowingDeps{
		HoldTTL:    cfg.Seating.HoldTTL,
		Pricing:    policy,
		Clock:      clock.System{},
		Logger:     logger,
		TicketBook: ticketBook,
	}

	var (
		showings       *showing.Catalog
		ticketRegistry domain.TicketRegistry
	)

	if cfg.DB.DSN != "" {
		var db *pgxpool.Pool

		db, err = app.NewDatabasePool(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		showings, err = app.LoadShowings(context.Background(), repository.NewPostgresLayoutRepository(db), deps)
		if err != nil {
			return err
		}

		ticketRegistry = repository.NewPostgresTicketRegistry(db)
	} else {
		logger.Warn("database DSN not set, hosting the demo showing with an in-memory ticket registry")

		showings, err = app.DemoShowings(deps, time.Now().Add(2*time.Hour).Truncate(time.Hour))
		if err != nil {
			return err
		}

		ticketRegistry = repository.NewMemoryTicketRegistry()
	}

	var redisClient *redis.Client

	if cfg.Redis.URL != "" {
		redisClient, err = app.NewRedisClient(cfg)
		if err != nil {
			return err
		}
		defer redisClient.Close()
	}

	application := app.NewApp(
		cfg,
		logger,
		appvalidator.NewValidator(),
		app.NewSessionManager(redisClient),
		showings,
		ticketRegistry,
		ticketBook,
	)

	return application.Serve()
}
