package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/shopsight/internal/account"
	"github.com/MrJamesThe3rd/shopsight/internal/admin"
	"github.com/MrJamesThe3rd/shopsight/internal/analytics"
	"github.com/MrJamesThe3rd/shopsight/internal/config"
	"github.com/MrJamesThe3rd/shopsight/internal/export"
	shopsightHttp "github.com/MrJamesThe3rd/shopsight/internal/http"
	adminHandler "github.com/MrJamesThe3rd/shopsight/internal/http/admin"
	analyticsHandler "github.com/MrJamesThe3rd/shopsight/internal/http/analytics"
	"github.com/MrJamesThe3rd/shopsight/internal/http/auth"
	recordsHandler "github.com/MrJamesThe3rd/shopsight/internal/http/records"
	"github.com/MrJamesThe3rd/shopsight/internal/importer"
	"github.com/MrJamesThe3rd/shopsight/internal/matching"
	"github.com/MrJamesThe3rd/shopsight/internal/record"
	"github.com/MrJamesThe3rd/shopsight/internal/store/flatfile"
	"github.com/MrJamesThe3rd/shopsight/internal/store/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	st, err := openStores(cfg)
	if err != nil {
		slog.Error("failed to open store", "backend", cfg.Store.Backend, "error", err)
		os.Exit(1)
	}
	defer st.close()

	var (
		accountService   = account.NewService(st.accounts)
		recordService    = record.NewService(st.records)
		matchingService  = matching.NewService(st.aliases)
		importService    = importer.NewService()
		exportService    = export.NewService(recordService)
		analyticsService = analytics.NewService(recordService, analytics.NewEngine(thresholds(cfg)))
		adminService     = admin.NewService(accountService, recordService)
	)

	if err := accountService.EnsureAdmin(context.Background(), cfg.Admin.Username, cfg.Admin.Password); err != nil {
		slog.Error("failed to ensure admin account", "error", err)
		os.Exit(1)
	}

	tokens := auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	var (
		authH      = auth.NewHandler(accountService, tokens)
		recordsH   = recordsHandler.NewHandler(recordService, importService, matchingService, exportService)
		analyticsH = analyticsHandler.NewHandler(analyticsService)
		adminH     = adminHandler.NewHandler(adminService)
	)

	router := shopsightHttp.New(tokens, authH, recordsH, analyticsH, adminH)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "addr", addr, "backend", cfg.Store.Backend)

	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// stores bundles the persistence handles for whichever backend is configured.
type stores struct {
	accounts account.Repository
	records  record.Store
	aliases  matching.Repository
	close    func()
}

func openStores(cfg *config.Config) (*stores, error) {
	switch cfg.Store.Backend {
	case "flatfile":
		db, err := flatfile.Open(cfg.Store.Dir)
		if err != nil {
			return nil, fmt.Errorf("opening flat-file store: %w", err)
		}

		return &stores{
			accounts: flatfile.NewAccountStore(db),
			records:  flatfile.NewRecordStore(db),
			aliases:  flatfile.NewAliasStore(db),
			close:    func() {},
		}, nil
	case "postgres":
		db, err := postgres.Connect(cfg.ConnectionString())
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}

		if err := postgres.Bootstrap(context.Background(), db); err != nil {
			db.Close()
			return nil, fmt.Errorf("bootstrapping schema: %w", err)
		}

		return &stores{
			accounts: postgres.NewAccountStore(db),
			records:  postgres.NewRecordStore(db),
			aliases:  postgres.NewAliasStore(db),
			close:    func() { db.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func thresholds(cfg *config.Config) analytics.Thresholds {
	return analytics.Thresholds{
		LowMargin:    decimal.NewFromFloat(cfg.Analytics.LowMargin),
		HighMargin:   decimal.NewFromFloat(cfg.Analytics.HighMargin),
		DebtRatio:    decimal.NewFromFloat(cfg.Analytics.DebtRatio),
		GrowthRatio:  decimal.NewFromFloat(cfg.Analytics.GrowthRatio),
		DeclineRatio: decimal.NewFromFloat(cfg.Analytics.DeclineRatio),
		LowStock:     cfg.Analytics.LowStock,
	}
}
