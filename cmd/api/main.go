package main

import (
	"context"
	"expvar"
	"fmt"
	"os"
	"runtime"

	"estate/internal/auth"
	"estate/internal/db"
	"estate/internal/domain/storage"
	"estate/internal/mailer"
	"estate/internal/ratelimiter"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	// Configure the encoder to be a console encoder with color
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)

	level := zapcore.InfoLevel

	core := zapcore.NewCore(consoleEncoder, zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout)), level)

	logger := zap.New(core)

	return logger.Sugar(), nil
}

var version = "1.0.0"

//	@title			Estate API
//	@description	Back office API for buildings, apartments, rents, payments and expenses.

//	@contact.name	API Support
//	@contact.email	support@estate.local

//	@BasePath					/v1
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer access token from POST /authentication/token
//	@securityDefinitions.basic	BasicAuth

func main() {
	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatalw("invalid configuration", "error", err)
	}

	// Database
	pool, err := db.New(context.Background(), cfg.DB)
	if err != nil {
		logger.Fatal(err)
	}
	defer pool.Close()
	logger.Info("database connection pool established")

	store := storage.NewContainer(pool)

	// Authenticator
	jwtAuthenticator, err := auth.NewJWTAuthenticator(auth.TokenConfig{
		Secret:   cfg.TokenSecret,
		Issuer:   cfg.TokenIssuer,
		Audience: cfg.TokenAudience,
		Expiry:   cfg.TokenExpiry,
	})
	if err != nil {
		logger.Fatal(err)
	}

	// Mail
	var mail mailer.Client = mailer.Discard{}
	if cfg.SMTPHost != "" {
		smtp, err := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
		if err != nil {
			logger.Fatal(err)
		}
		mail = smtp
	} else {
		logger.Warn("SMTP_HOST not set, outgoing mail is discarded")
	}

	app := &application{
		config:        cfg,
		logger:        logger,
		store:         store,
		mailer:        mail,
		authenticator: jwtAuthenticator,
		authorizer:    auth.NewAuthorizer(jwtAuthenticator),
		rateLimiter: ratelimiter.NewFixedWindowLimiter(
			cfg.RateLimiter.RequestsPerTimeFrame,
			cfg.RateLimiter.TimeFrame,
		),
	}

	//cloudinary
	if cfg.CloudinaryURL != "" {
		images, err := newCloudinaryUploader(cfg.CloudinaryURL)
		if err != nil {
			logger.Fatal(err)
		}
		app.images = images
	} else {
		logger.Warn("CLOUDINARY_URL not set, building image upload is disabled")
	}

	//Metrics collected http://localhost:8080/v1/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("database", expvar.Func(func() any {
		s := pool.Stat()
		return map[string]any{
			"total_conns":    s.TotalConns(),
			"idle_conns":     s.IdleConns(),
			"acquired_conns": s.AcquiredConns(),
			"max_conns":      s.MaxConns(),
		}
	}))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
