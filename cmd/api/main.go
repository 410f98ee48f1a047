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
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/rkap/internal/attachment"
	"github.com/MrJamesThe3rd/rkap/internal/auth"
	"github.com/MrJamesThe3rd/rkap/internal/balancesheet"
	bsStore "github.com/MrJamesThe3rd/rkap/internal/balancesheet/store"
	"github.com/MrJamesThe3rd/rkap/internal/category"
	catStore "github.com/MrJamesThe3rd/rkap/internal/category/store"
	"github.com/MrJamesThe3rd/rkap/internal/config"
	"github.com/MrJamesThe3rd/rkap/internal/database"
	rkapHttp "github.com/MrJamesThe3rd/rkap/internal/http"
	attHandler "github.com/MrJamesThe3rd/rkap/internal/http/attachment"
	authHandler "github.com/MrJamesThe3rd/rkap/internal/http/auth"
	bsHandler "github.com/MrJamesThe3rd/rkap/internal/http/balancesheet"
	catHandler "github.com/MrJamesThe3rd/rkap/internal/http/category"
	reportHandler "github.com/MrJamesThe3rd/rkap/internal/http/report"
	txHandler "github.com/MrJamesThe3rd/rkap/internal/http/transaction"
	userHandler "github.com/MrJamesThe3rd/rkap/internal/http/user"
	"github.com/MrJamesThe3rd/rkap/internal/importer"
	"github.com/MrJamesThe3rd/rkap/internal/report"
	reportStore "github.com/MrJamesThe3rd/rkap/internal/report/store"
	"github.com/MrJamesThe3rd/rkap/internal/transaction"
	txStore "github.com/MrJamesThe3rd/rkap/internal/transaction/store"
	"github.com/MrJamesThe3rd/rkap/internal/user"
	userStore "github.com/MrJamesThe3rd/rkap/internal/user/store"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(cfg.ConnectionString()); err != nil {
			slog.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	files, err := attachment.NewStore(cfg.Storage.AttachmentDir)
	if err != nil {
		slog.Error("failed to prepare attachment storage", "error", err)
		os.Exit(1)
	}

	tokens := auth.NewTokens(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	var (
		userService         = user.NewService(userStore.New(db))
		categoryService     = category.NewService(catStore.New(db))
		balanceSheetService = balancesheet.NewService(bsStore.New(db))
		transactionService  = transaction.NewService(txStore.New(db), files)
		importService       = importer.NewService()
		reportService       = report.NewService(reportStore.New(db), files)
	)

	router := rkapHttp.New(rkapHttp.Handlers{
		Auth:          authHandler.NewHandler(userService, tokens),
		Users:         userHandler.NewHandler(userService),
		Categories:    catHandler.NewHandler(categoryService),
		BalanceSheets: bsHandler.NewHandler(balanceSheetService),
		Transactions:  txHandler.NewHandler(transactionService, importService, cfg.Storage.MaxUploadBytes),
		Attachments:   attHandler.NewHandler(files, cfg.Storage.MaxUploadBytes),
		Reports:       reportHandler.NewHandler(reportService),
	}, tokens, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      2 * cfg.Server.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)

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
