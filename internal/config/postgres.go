package config

import "time"

// Postgres: every in-flight notification keeps one connection for the whole
// send, see Config.Validate.
type Postgres struct {
	DSN             string        `env:"PG_DSN,notEmpty"       json:"-"`
	MaxIdleConns    int           `env:"PG_MAX_IDLE_CONNS"     envDefault:"5"`
	MaxOpenConns    int           `env:"PG_MAX_OPEN_CONNS"     envDefault:"10"`
	ConnMaxLifetime time.Duration `env:"PG_CONN_MAX_LIFETIME"  envDefault:"5m"`
}
