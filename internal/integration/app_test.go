package integration_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-seating/internal/app"
	"github.com/metinatakli/cinema-seating/internal/clock"
	"github.com/metinatakli/cinema-seating/internal/customer"
	"github.com/metinatakli/cinema-seating/internal/pricing"
	"github.com/metinatakli/cinema-seating/internal/repository"
	appvalidator "github.com/metinatakli/cinema-seating/internal/validator"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App         *app.Application
	DB          *pgxpool.Pool
	RedisClient *redis.Client
	Clock       *clock.Manual
	Registry    *repository.PostgresTicketRegistry
	TicketBook  *customer.TicketBook

	cfg    app.Config
	logger *slog.Logger
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &TestApp{
		DB:          db,
		RedisClient: redisClient,
		Registry:    repository.NewPostgresTicketRegistry(db),
		cfg:         cfg,
		logger:      logger,
	}, nil
}

// Open reloads the showings from the database and builds a fresh application,
// so every test starts with all seats available.
func (a *TestApp) Open(ctx context.Context) error {
	pricingCfg, err := a.cfg.PricingConfig()
	if err != nil {
		return err
	}

	policy, err := pricing.New(pricingCfg)
	if err != nil {
		return err
	}

	a.Clock = clock.NewManual(TestClockStart)
	a.TicketBook = customer.NewTicketBook()

	showings, err := app.LoadShowings(ctx, repository.NewPostgresLayoutRepository(a.DB), app.ShowingDeps{
		HoldTTL:    a.cfg.Seating.HoldTTL,
		Pricing:    policy,
		Clock:      a.Clock,
		Logger:     a.logger,
		TicketBook: a.TicketBook,
	})
	if err != nil {
		return err
	}

	a.App = app.NewApp(
		a.cfg,
		a.logger,
		appvalidator.NewValidator(),
		app.NewSessionManager(a.RedisClient),
		showings,
		a.Registry,
		a.TicketBook,
	)

	return nil
}

func (a *TestApp) Close() {
	a.RedisClient.Close()
	a.DB.Close()
}
