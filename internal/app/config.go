package app

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/metinatakli/cinema-seating/internal/pricing"
	"github.com/shopspring/decimal"
)

type Config struct {
	Port             int
	Env              string
	DB               DBConfig
	Redis            RedisConfig
	Seating          SeatingConfig
	OtelCollectorUrl string
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type SeatingConfig struct {
	HoldTTL         time.Duration
	BasePrices      string
	ThreeDSurcharge string
	VIPSurcharge    string
}

// ParseConfig reads the command line flags. Values from an optional .env file
// and SEATING_* environment variables become the flag defaults.
func ParseConfig(args []string) (Config, bool, error) {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		return Config{}, false, fmt.Errorf("loading .env file: %w", err)
	}

	var cfg Config

	defaults := pricing.DefaultConfig()

	fs := flag.NewFlagSet("api", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "port", envInt("SEATING_PORT", 3000), "server port")
	fs.StringVar(&cfg.Env, "env", envString("SEATING_ENV", "dev"), "Environment (dev|staging|prod)")

	fs.StringVar(&cfg.DB.DSN, "db-dsn", envString("SEATING_DB_DSN", ""), "PostgreSQL DSN")
	fs.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	fs.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	fs.StringVar(&cfg.Redis.URL, "redis-url", envString("SEATING_REDIS_URL", ""), "Redis URL")
	fs.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	fs.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	fs.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	fs.DurationVar(&cfg.Seating.HoldTTL, "hold-ttl", envDuration("SEATING_HOLD_TTL", 30*time.Minute), "Seat hold lifetime, zero disables expiry")
	fs.StringVar(&cfg.Seating.BasePrices, "base-prices", envString("SEATING_BASE_PRICES", pricing.FormatBasePrices(defaults.BasePrices)), "Base price per seat category")
	fs.StringVar(&cfg.Seating.ThreeDSurcharge, "surcharge-3d", envString("SEATING_SURCHARGE_3D", defaults.ThreeDSurcharge.String()), "Surcharge for 3D showings")
	fs.StringVar(&cfg.Seating.VIPSurcharge, "surcharge-vip", envString("SEATING_SURCHARGE_VIP", defaults.VIPSurcharge.String()), "Surcharge for VIP showings")

	fs.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", envString("SEATING_OTEL_COLLECTOR_URL", ""), "OpenTelemetry collector gRPC endpoint")

	displayVersion := fs.Bool("version", false, "Display version and exit")

	err = fs.Parse(args)
	if err != nil {
		return Config{}, false, err
	}

	return cfg, *displayVersion, nil
}

// PricingConfig turns the textual tariff flags into a pricing configuration.
func (c Config) PricingConfig() (pricing.Config, error) {
	basePrices, err := pricing.ParseBasePrices(c.Seating.BasePrices)
	if err != nil {
		return pricing.Config{}, err
	}

	threeD, err := decimal.NewFromString(c.Seating.ThreeDSurcharge)
	if err != nil {
		return pricing.Config{}, fmt.Errorf("invalid 3D surcharge %q: %w", c.Seating.ThreeDSurcharge, err)
	}

	vip, err := decimal.NewFromString(c.Seating.VIPSurcharge)
	if err != nil {
		return pricing.Config{}, fmt.Errorf("invalid VIP surcharge %q: %w", c.Seating.VIPSurcharge, err)
	}

	return pricing.Config{
		BasePrices:      basePrices,
		ThreeDSurcharge: threeD,
		VIPSurcharge:    vip,
	}, nil
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}

	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}

	return v
}
