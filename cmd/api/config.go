package main

import (
	"errors"
	"time"

	"estate/internal/db"
	"estate/internal/ratelimiter"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type config struct {
	Addr        string `envconfig:"ADDR" default:":8080"`
	Env         string `envconfig:"ENV" default:"development"`
	APIURL      string `envconfig:"EXTERNAL_URL" default:"localhost:8080"`
	FrontendURL string `envconfig:"FRONTEND_URL" default:"http://localhost:3000"`

	TokenSecret   string        `envconfig:"AUTH_TOKEN_SECRET" required:"true"`
	TokenExpiry   time.Duration `envconfig:"AUTH_TOKEN_EXP" default:"72h"`
	TokenIssuer   string        `envconfig:"AUTH_TOKEN_ISS" default:"estate"`
	TokenAudience string        `envconfig:"AUTH_TOKEN_AUD" default:"estate"`
	BasicUser     string        `envconfig:"AUTH_BASIC_USER" default:"admin"`
	BasicPass     string        `envconfig:"AUTH_BASIC_PASS"`

	// LoginRequestsPerMinute caps POST /authentication/token per client IP.
	LoginRequestsPerMinute int `envconfig:"LOGIN_REQUESTS_PER_MINUTE" default:"10"`

	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	MailFrom     string `envconfig:"MAIL_FROM_EMAIL" default:"no-reply@estate.local"`

	CloudinaryURL string `envconfig:"CLOUDINARY_URL"`

	DB          db.PoolConfig      `ignored:"true"`
	RateLimiter ratelimiter.Config `ignored:"true"`
}

func (c config) isProduction() bool {
	return c.Env == "production"
}

// loadConfig reads an optional .env file and then the process environment.
// A missing token secret or database address is a startup error.
func loadConfig() (config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg config
	if err := envconfig.Process("", &cfg); err != nil {
		return config{}, err
	}
	if err := envconfig.Process("", &cfg.DB); err != nil {
		return config{}, err
	}
	if err := envconfig.Process("", &cfg.RateLimiter); err != nil {
		return config{}, err
	}

	if cfg.TokenSecret == "" {
		return config{}, errors.New("AUTH_TOKEN_SECRET must be provided")
	}
	if cfg.DB.Addr == "" {
		return config{}, errors.New("DB_ADDR must be provided")
	}
	return cfg, nil
}
