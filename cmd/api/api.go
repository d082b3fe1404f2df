package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"estate/docs" //this is required to generate swagger docs
	"estate/internal/auth"
	"estate/internal/domain/storage"
	"estate/internal/mailer"
	"estate/internal/ratelimiter"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

type application struct {
	config        config
	store         *storage.Container
	logger        *zap.SugaredLogger
	images        imageUploader
	mailer        mailer.Client
	authenticator auth.Authenticator
	authorizer    *auth.Authorizer
	rateLimiter   ratelimiter.Limiter
	wg            sync.WaitGroup
}

// Role requirements per resource. An empty list accepts every known role.
var (
	anyRole         []auth.Role
	adminOnly       = []auth.Role{auth.RoleAdmin}
	managers        = []auth.Role{auth.RoleAdmin, auth.RoleManager}
	rentReaders     = []auth.Role{auth.RoleAdmin, auth.RoleManager, auth.RoleStaff, auth.RoleCashier, auth.RoleTenant}
	paymentReaders  = []auth.Role{auth.RoleAdmin, auth.RoleManager, auth.RoleCashier, auth.RoleTenant}
	paymentWriters  = []auth.Role{auth.RoleAdmin, auth.RoleManager, auth.RoleCashier}
	expenseKeepers  = []auth.Role{auth.RoleAdmin, auth.RoleManager, auth.RoleStaff}
	expenseDeleters = managers
)

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.secureHeaders())

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{app.config.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	if app.config.RateLimiter.Enabled {
		r.Use(app.RateLimiterMiddleware)
	}

	//Set a timeout value on the request context (ctx), that will signal through ctx.Done() that the request has timed out and further processing should be stopped
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.Addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		// Public routes
		r.Route("/authentication", func(r chi.Router) {
			r.Post("/user", app.registerUserHandler)
			r.With(httprate.Limit(
				app.config.LoginRequestsPerMinute,
				time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					app.rateLimitExceededResponse(w, r, time.Minute)
				}),
			)).Post("/token", app.createTokenHandler)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(app.requireRoles(anyRole...)).Get("/me", app.getCurrentUserHandler)
			r.With(app.requireRoles(anyRole...)).Put("/me", app.updateCurrentUserHandler)

			r.With(app.requireRoles(managers...)).Get("/", app.listUsersHandler)
			r.With(app.requireRoles(managers...)).Get("/export.csv", app.exportUsersHandler)
			r.With(app.requireRoles(adminOnly...)).Post("/", app.createUserHandler)

			r.Route("/{userID}", func(r chi.Router) {
				r.With(app.requireRoles(managers...)).Get("/", app.getUserHandler)
				r.With(app.requireRoles(adminOnly...)).Put("/", app.updateUserHandler)
				r.With(app.requireRoles(adminOnly...)).Delete("/", app.deleteUserHandler)
			})
		})

		r.Route("/lawfirms", func(r chi.Router) {
			r.With(app.requireRoles(anyRole...)).Get("/", app.listLawFirmsHandler)
			r.With(app.requireRoles(managers...)).Get("/export.csv", app.exportLawFirmsHandler)
			r.With(app.requireRoles(managers...)).Post("/", app.createLawFirmHandler)

			r.Route("/{lawFirmID}", func(r chi.Router) {
				r.With(app.requireRoles(anyRole...)).Get("/", app.getLawFirmHandler)
				r.With(app.requireRoles(managers...)).Put("/", app.updateLawFirmHandler)
				r.With(app.requireRoles(adminOnly...)).Delete("/", app.deleteLawFirmHandler)
			})
		})

		r.Route("/buildings", func(r chi.Router) {
			r.With(app.requireRoles(anyRole...)).Get("/", app.listBuildingsHandler)
			r.With(app.requireRoles(managers...)).Get("/export.csv", app.exportBuildingsHandler)
			r.With(app.requireRoles(managers...)).Post("/", app.createBuildingHandler)

			r.Route("/{buildingID}", func(r chi.Router) {
				r.With(app.requireRoles(anyRole...)).Get("/", app.getBuildingHandler)
				r.With(app.requireRoles(managers...)).Put("/", app.updateBuildingHandler)
				r.With(app.requireRoles(managers...)).Post("/image", app.uploadBuildingImageHandler)
				r.With(app.requireRoles(adminOnly...)).Delete("/", app.deleteBuildingHandler)
			})
		})

		r.Route("/apartments", func(r chi.Router) {
			r.With(app.requireRoles(anyRole...)).Get("/", app.listApartmentsHandler)
			r.With(app.requireRoles(managers...)).Get("/export.csv", app.exportApartmentsHandler)
			r.With(app.requireRoles(managers...)).Post("/", app.createApartmentHandler)

			r.Route("/{apartmentID}", func(r chi.Router) {
				r.With(app.requireRoles(anyRole...)).Get("/", app.getApartmentHandler)
				r.With(app.requireRoles(managers...)).Put("/", app.updateApartmentHandler)
				r.With(app.requireRoles(adminOnly...)).Delete("/", app.deleteApartmentHandler)
			})
		})

		r.Route("/rents", func(r chi.Router) {
			r.With(app.requireRoles(rentReaders...)).Get("/", app.listRentsHandler)
			r.With(app.requireRoles(managers...)).Get("/export.csv", app.exportRentsHandler)
			r.With(app.requireRoles(managers...)).Post("/", app.createRentHandler)

			r.Route("/{rentID}", func(r chi.Router) {
				r.With(app.requireRoles(rentReaders...)).Get("/", app.getRentHandler)
				r.With(app.requireRoles(managers...)).Put("/", app.updateRentHandler)
				r.With(app.requireRoles(adminOnly...)).Delete("/", app.deleteRentHandler)
			})
		})

		r.Route("/payments", func(r chi.Router) {
			r.With(app.requireRoles(paymentReaders...)).Get("/", app.listPaymentsHandler)
			r.With(app.requireRoles(managers...)).Get("/export.csv", app.exportPaymentsHandler)
			r.With(app.requireRoles(paymentWriters...)).Post("/", app.createPaymentHandler)

			r.Route("/{paymentID}", func(r chi.Router) {
				r.With(app.requireRoles(paymentReaders...)).Get("/", app.getPaymentHandler)
				r.With(app.requireRoles(paymentWriters...)).Put("/", app.updatePaymentHandler)
				r.With(app.requireRoles(adminOnly...)).Delete("/", app.deletePaymentHandler)
			})
		})

		r.Route("/expenses", func(r chi.Router) {
			r.With(app.requireRoles(expenseKeepers...)).Get("/", app.listExpensesHandler)
			r.With(app.requireRoles(managers...)).Get("/export.csv", app.exportExpensesHandler)
			r.With(app.requireRoles(expenseKeepers...)).Post("/", app.createExpenseHandler)

			r.Route("/{expenseID}", func(r chi.Router) {
				r.With(app.requireRoles(expenseKeepers...)).Get("/", app.getExpenseHandler)
				r.With(app.requireRoles(expenseKeepers...)).Put("/", app.updateExpenseHandler)
				r.With(app.requireRoles(expenseDeleters...)).Delete("/", app.deleteExpenseHandler)
			})
		})

		r.Route("/bookingstatus", func(r chi.Router) {
			r.With(app.requireRoles(anyRole...)).Get("/", app.listBookingStatusesHandler)
			r.With(app.requireRoles(managers...)).Get("/export.csv", app.exportBookingStatusesHandler)
			r.With(app.requireRoles(managers...)).Post("/", app.createBookingStatusHandler)

			r.Route("/{statusID}", func(r chi.Router) {
				r.With(app.requireRoles(anyRole...)).Get("/", app.getBookingStatusHandler)
				r.With(app.requireRoles(managers...)).Put("/", app.updateBookingStatusHandler)
				r.With(app.requireRoles(adminOnly...)).Delete("/", app.deleteBookingStatusHandler)
			})
		})
	})
	return r
}

func (app *application) secureHeaders() func(http.Handler) http.Handler {
	sm := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        app.config.isProduction(),
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:      !app.config.isProduction(),
	})
	return sm.Handler
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.APIURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.Addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	// Implementing graceful shutdown
	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		err := srv.Shutdown(ctx)
		app.logger.Infow("waiting for background tasks")
		app.wg.Wait()
		shutdown <- err
	}()

	app.logger.Infow("server has started", "addr", app.config.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.Addr, "env", app.config.Env)

	return nil
}
