package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"nomina/internal/domain/auth"
	"nomina/internal/domain/calendar"
	"nomina/internal/domain/company"
	"nomina/internal/domain/employee"
	"nomina/internal/domain/incidence"
	"nomina/internal/domain/notifications"
	"nomina/internal/domain/payroll"
	"nomina/internal/platform/config"
	"nomina/internal/platform/db"
	"nomina/internal/platform/email"
	authhandler "nomina/internal/transport/http/handlers/auth"
	calendarshandler "nomina/internal/transport/http/handlers/calendars"
	companieshandler "nomina/internal/transport/http/handlers/companies"
	employeeshandler "nomina/internal/transport/http/handlers/employees"
	incidenceshandler "nomina/internal/transport/http/handlers/incidences"
	notificationshandler "nomina/internal/transport/http/handlers/notifications"
	payrollhandler "nomina/internal/transport/http/handlers/payroll"
	"nomina/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	authStore := auth.NewStore(pool)
	authService := auth.NewService(authStore)
	companyService := company.NewService(company.NewStore(pool))
	employeeService := employee.NewService(employee.NewStore(pool))
	calendarService := calendar.NewService(calendar.NewStore(pool))
	incidenceStore := incidence.NewStore(pool)
	incidenceService := incidence.NewService(incidenceStore, employeeService)
	payrollService := payroll.NewService(payroll.NewStore(pool), incidenceStore)

	mailer := email.New(cfg)
	dispatcher := notifications.NewDispatcher(notifications.NewStore(pool), mailer, cfg.EmailFrom)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authService, authStore, mailer, cfg.JWTSecret, cfg.EmailFrom, cfg.AppURL).RegisterRoutes(r)
		companieshandler.NewHandler(companyService, authStore).RegisterRoutes(r)
		employeeshandler.NewHandler(employeeService, authStore).RegisterRoutes(r)
		calendarshandler.NewHandler(calendarService, authStore).RegisterRoutes(r)
		incidenceshandler.NewHandler(incidenceService, authStore, dispatcher).RegisterRoutes(r)
		payrollhandler.NewHandler(payrollService, companyService, authStore, dispatcher).RegisterRoutes(r)
		notificationshandler.NewHandler(dispatcher).RegisterRoutes(r)
	})

	log.Printf("nomina server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
