package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App
	HTTP     HTTP
	Postgres Postgres
	Redis    Redis
	Probe    Probe
	Metrics  Metrics
	Scoring  Scoring
	Sweep    Sweep
	SMTP     SMTP
	Twilio   Twilio
	Bot      Bot
	Kafka    Kafka
}

type App struct {
	Name      string     `env:"APP_NAME"    envDefault:"dealflow"`
	Version   string     `env:"APP_VERSION" envDefault:"dev"`
	LogFormat string     `env:"LOG_FORMAT"  envDefault:"text"`
	LogLevel  slog.Level `env:"LOG_LEVEL"   envDefault:"INFO"`
}

type HTTP struct {
	ListenAddress   string        `env:"HTTP_LISTEN_ADDRESS"   envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CORSOrigins     []string      `env:"HTTP_CORS_ORIGINS"     envSeparator:","`
}

type Probe struct {
	ListenAddress string `env:"PROBE_LISTEN_ADDRESS" envDefault:":8081"`
}

type Metrics struct {
	ListenAddress string `env:"METRICS_LISTEN_ADDRESS" envDefault:":9090"`
}

// Scoring: RulesFile is optional, the built-in rules are used without it.
type Scoring struct {
	RulesFile   string `env:"SCORING_RULES_FILE"`
	QualityGate int    `env:"MATCH_QUALITY_GATE" envDefault:"60"`
}

// Sweep: NotifyConcurrency is the number of asynq workers settling matches
// in parallel with the scheduled sweep.
type Sweep struct {
	Enabled           bool          `env:"SWEEP_ENABLED"      envDefault:"true"`
	Schedule          string        `env:"SWEEP_SCHEDULE"     envDefault:"@every 15m"`
	BatchSize         int           `env:"SWEEP_BATCH_SIZE"   envDefault:"100"`
	SendTimeout       time.Duration `env:"SWEEP_SEND_TIMEOUT" envDefault:"10s"`
	LeaseTTL          time.Duration `env:"SWEEP_LEASE_TTL"    envDefault:"10m"`
	NotifyConcurrency int           `env:"NOTIFY_CONCURRENCY" envDefault:"4"`
}

// reservedConns: one for the scheduled sweep, one for ingestion and queries.
const reservedConns = 2

var ErrPoolTooSmall = errors.New("postgres pool too small")

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("config.Validate: %w", err)
	}

	return config, nil
}

// Validate checks settings that depend on each other. A match keeps its row
// lock and pooled connection while email and SMS are sent, so the pool has
// to cover every concurrent settler plus the reserved connections.
func (c Config) Validate() error {
	if c.Sweep.NotifyConcurrency < 1 {
		return errors.New("NOTIFY_CONCURRENCY must be positive")
	}

	if need := c.Sweep.NotifyConcurrency + reservedConns; c.Postgres.MaxOpenConns > 0 && c.Postgres.MaxOpenConns < need {
		return fmt.Errorf("%w: PG_MAX_OPEN_CONNS=%d, need at least %d for NOTIFY_CONCURRENCY=%d",
			ErrPoolTooSmall, c.Postgres.MaxOpenConns, need, c.Sweep.NotifyConcurrency)
	}

	return nil
}

// LoadPostgres reads only the database section, for commands that need
// nothing else.
func LoadPostgres() (Postgres, error) {
	_ = godotenv.Load()

	var pg Postgres

	if err := env.Parse(&pg); err != nil {
		return Postgres{}, fmt.Errorf("env.Parse: %w", err)
	}

	return pg, nil
}
