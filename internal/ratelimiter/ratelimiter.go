package ratelimiter

import "time"

type Limiter interface {
	Allow(key string) (bool, time.Duration)
}

type Config struct {
	RequestsPerTimeFrame int           `envconfig:"RATELIMITER_REQUESTS_COUNT" default:"200"`
	TimeFrame            time.Duration `envconfig:"RATELIMITER_TIME_FRAME" default:"5s"`
	Enabled              bool          `envconfig:"RATE_LIMITER_ENABLED" default:"false"`
}
