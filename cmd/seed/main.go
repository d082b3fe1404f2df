// Command seed applies the database schema and creates the bootstrap
// administrator account.
package main

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"estate/internal/db"
	"estate/internal/domain/users"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

type seedConfig struct {
	DB            db.PoolConfig `ignored:"true"`
	AdminEmail    string        `envconfig:"SEED_ADMIN_EMAIL" default:"admin@estate.local"`
	AdminUsername string        `envconfig:"SEED_ADMIN_USERNAME" default:"admin"`
	AdminName     string        `envconfig:"SEED_ADMIN_NAME" default:"Estate Administrator"`
	AdminPassword string        `envconfig:"SEED_ADMIN_PASSWORD" required:"true"`
}

func main() {
	logger := zap.Must(zap.NewDevelopment()).Sugar()
	defer logger.Sync()

	_ = godotenv.Load()

	var cfg seedConfig
	if err := envconfig.Process("", &cfg); err != nil {
		logger.Fatalw("invalid configuration", "error", err)
	}
	if err := envconfig.Process("", &cfg.DB); err != nil {
		logger.Fatalw("invalid database configuration", "error", err)
	}

	if err := run(cfg, logger); err != nil {
		logger.Errorw("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg seedConfig, logger *zap.SugaredLogger) error {
	if len(cfg.AdminPassword) < 8 {
		return errors.New("SEED_ADMIN_PASSWORD must be at least 8 characters")
	}

	cfg.DB.MaxConns = 2
	pool, err := db.New(context.Background(), cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Migrate(ctx, pool); err != nil {
		return err
	}
	logger.Info("schema applied")

	admin := &users.User{
		Email:    strings.ToLower(strings.TrimSpace(cfg.AdminEmail)),
		Username: cfg.AdminUsername,
		FullName: cfg.AdminName,
	}
	if err := admin.Password.Set(cfg.AdminPassword); err != nil {
		return err
	}

	if err := users.NewRepository(pool).UpsertAdmin(ctx, admin); err != nil {
		return err
	}
	logger.Infow("admin account ready", "id", admin.ID, "email", admin.Email)

	return nil
}
