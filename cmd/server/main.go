package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"staffdesk/internal/domain/auth"
	"staffdesk/internal/domain/core"
	"staffdesk/internal/domain/leave"
	"staffdesk/internal/platform/config"
	"staffdesk/internal/platform/db"
	authhandler "staffdesk/internal/transport/http/handlers/auth"
	corehandler "staffdesk/internal/transport/http/handlers/core"
	leavehandler "staffdesk/internal/transport/http/handlers/leave"
	reportshandler "staffdesk/internal/transport/http/handlers/reports"
	"staffdesk/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
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
		if err := db.SeedAdmin(ctx, pool, cfg.SeedAdminUsername, cfg.SeedAdminPassword); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	authSvc := &auth.Service{
		Store:  auth.NewStore(pool),
		Tokens: auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL),
	}
	coreSvc := core.NewService(core.NewStore(pool))
	leaveSvc := leave.NewService(leave.NewStore(pool))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.MaxBody(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(authSvc))

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
		authhandler.NewHandler(authSvc).RegisterRoutes(r)
		corehandler.NewHandler(coreSvc).RegisterRoutes(r)
		leavehandler.NewHandler(leaveSvc).RegisterRoutes(r)
		reportshandler.NewHandler(leaveSvc).RegisterRoutes(r)
	})

	log.Printf("staffdesk server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
