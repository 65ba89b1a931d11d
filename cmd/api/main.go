package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/finsight/internal/category"
	categoryStore "github.com/MrJamesThe3rd/finsight/internal/category/store"
	"github.com/MrJamesThe3rd/finsight/internal/config"
	"github.com/MrJamesThe3rd/finsight/internal/currency"
	"github.com/MrJamesThe3rd/finsight/internal/database"
	"github.com/MrJamesThe3rd/finsight/internal/export"
	"github.com/MrJamesThe3rd/finsight/internal/goal"
	goalStore "github.com/MrJamesThe3rd/finsight/internal/goal/store"
	finsightHttp "github.com/MrJamesThe3rd/finsight/internal/http"
	"github.com/MrJamesThe3rd/finsight/internal/http/auth"
	categoryHandler "github.com/MrJamesThe3rd/finsight/internal/http/category"
	currencyHandler "github.com/MrJamesThe3rd/finsight/internal/http/currency"
	exportHandler "github.com/MrJamesThe3rd/finsight/internal/http/export"
	goalHandler "github.com/MrJamesThe3rd/finsight/internal/http/goal"
	importHandler "github.com/MrJamesThe3rd/finsight/internal/http/importcsv"
	ruleHandler "github.com/MrJamesThe3rd/finsight/internal/http/matching"
	reportHandler "github.com/MrJamesThe3rd/finsight/internal/http/report"
	txHandler "github.com/MrJamesThe3rd/finsight/internal/http/transaction"
	"github.com/MrJamesThe3rd/finsight/internal/importer"
	"github.com/MrJamesThe3rd/finsight/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/finsight/internal/matching/store"
	"github.com/MrJamesThe3rd/finsight/internal/rates"
	"github.com/MrJamesThe3rd/finsight/internal/rates/oxr"
	"github.com/MrJamesThe3rd/finsight/internal/summary"
	"github.com/MrJamesThe3rd/finsight/internal/transaction"
	txStore "github.com/MrJamesThe3rd/finsight/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.App.LogLevel})).
		With("app", cfg.App.Name))

	if cfg.Auth.JWTSecret == "" {
		slog.Error("AUTH_JWT_SECRET is required")
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	rateCache := rates.NewCache(oxr.New(cfg.Rates.BaseURL, cfg.Rates.AppID, cfg.Rates.Timeout))

	var (
		categoryService    = category.NewService(categoryStore.New(db))
		transactionService = transaction.NewService(txStore.New(db), categoryService)
		goalService        = goal.NewService(goalStore.New(db), categoryService)
		summaryService     = summary.NewService(transactionService, goalService, cfg.Currency.Domestic)
		converter          = currency.NewConverter(rateCache)
		importService      = importer.NewService()
		ruleService        = matching.NewService(matchingStore.New(db), categoryService)
		exportService      = export.NewService(transactionService, summaryService)
	)

	router := finsightHttp.New(finsightHttp.Handlers{
		Reports:      reportHandler.NewHandler(summaryService, converter),
		Currency:     currencyHandler.NewHandler(converter),
		Goals:        goalHandler.NewHandler(goalService),
		Transactions: txHandler.NewHandler(transactionService),
		Categories:   categoryHandler.NewHandler(categoryService),
		Import:       importHandler.NewHandler(importService, transactionService, ruleService),
		Rules:        ruleHandler.NewHandler(ruleService),
		Export:       exportHandler.NewHandler(exportService, summaryService.Today),
	}, auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL), cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go evictOnHangup(ctx, rateCache)

	go func() {
		slog.Info("starting server", "addr", srv.Addr, "domestic_currency", cfg.Currency.Domestic)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}

	slog.Info("server stopped")
}

// evictOnHangup drops the cached exchange rates on SIGHUP so the next conversion
// fetches a fresh snapshot.
func evictOnHangup(ctx context.Context, cache *rates.Cache) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			cache.Evict()
		}
	}
}
