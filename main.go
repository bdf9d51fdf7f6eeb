// nti-admin/main.go

package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hamagold/nti-admin/config"
	"github.com/hamagold/nti-admin/internal/audit"
	"github.com/hamagold/nti-admin/internal/handlers"
	"github.com/hamagold/nti-admin/internal/ledger"
	"github.com/hamagold/nti-admin/internal/notify"
	"github.com/hamagold/nti-admin/internal/perm"
	"github.com/hamagold/nti-admin/internal/routes"
	"github.com/hamagold/nti-admin/internal/store/gormstore"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rdb := config.ConnectRedis(ctx, cfg)

	st := gormstore.New(db)
	if err := st.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	// The notification threshold is not seeded; the built-in default
	// applies until an admin sets one.
	if err := st.Seed(ctx, perm.Catalog(), perm.DefaultSets(), nil); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}
	if cfg.AdminPassword != "" {
		if err := st.EnsureAdmin(ctx, cfg.AdminLogin, cfg.AdminEmail, cfg.AdminPassword, perm.RoleSuperadmin); err != nil {
			slog.Error("admin bootstrap failed", "error", err)
			os.Exit(1)
		}
	}

	hub := handlers.NewFeedHub()
	go hub.Run()

	resolver := perm.NewResolver(st, rdb)
	recorder := audit.NewRecorder(st, hub)
	engine := ledger.NewEngine(st, resolver, recorder)
	deriver := notify.NewDeriver(st)

	api := handlers.New(db, rdb, engine, resolver, recorder, deriver, hub, cfg.JWTSecret)

	r := gin.Default()
	routes.SetupRoutes(r, api)

	slog.Info("starting server", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
