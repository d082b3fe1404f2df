package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolConfig sizes the connection pool. It is read from the environment
// alongside the service config; zero sizes keep the pgx defaults.
type PoolConfig struct {
	Addr           string        `envconfig:"DB_ADDR" required:"true"`
	MaxConns       int32         `envconfig:"DB_MAX_OPEN_CONNS" default:"30"`
	MinConns       int32         `envconfig:"DB_MIN_CONNS" default:"0"`
	MaxIdleTime    time.Duration `envconfig:"DB_MAX_IDLE_TIME" default:"15m"`
	MaxLifetime    time.Duration `envconfig:"DB_MAX_CONN_LIFETIME" default:"1h"`
	ConnectTimeout time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"30s"`
}

// parse turns c into a pgxpool config without connecting.
func (c PoolConfig) parse() (*pgxpool.Config, error) {
	if c.Addr == "" {
		return nil, errors.New("db: address is empty")
	}
	if c.MinConns > 0 && c.MaxConns > 0 && c.MinConns > c.MaxConns {
		return nil, errors.New("db: DB_MIN_CONNS is larger than DB_MAX_OPEN_CONNS")
	}

	config, err := pgxpool.ParseConfig(c.Addr)
	if err != nil {
		return nil, err
	}

	if c.MaxConns > 0 {
		config.MaxConns = c.MaxConns
	}
	if c.MinConns > 0 {
		config.MinConns = c.MinConns
	}
	if c.MaxIdleTime > 0 {
		config.MaxConnIdleTime = c.MaxIdleTime
	}
	if c.MaxLifetime > 0 {
		config.MaxConnLifetime = c.MaxLifetime
	}
	return config, nil
}

// New opens the pool and pings it. ConnectTimeout bounds both steps.
func New(ctx context.Context, c PoolConfig) (*pgxpool.Pool, error) {
	config, err := c.parse()
	if err != nil {
		return nil, err
	}

	timeout := c.ConnectTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
