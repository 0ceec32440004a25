package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/moneymuse/internal/auth"
	"github.com/MrJamesThe3rd/moneymuse/internal/budget"
	budgetStore "github.com/MrJamesThe3rd/moneymuse/internal/budget/store"
	"github.com/MrJamesThe3rd/moneymuse/internal/category"
	categoryStore "github.com/MrJamesThe3rd/moneymuse/internal/category/store"
	"github.com/MrJamesThe3rd/moneymuse/internal/config"
	"github.com/MrJamesThe3rd/moneymuse/internal/database"
	museHttp "github.com/MrJamesThe3rd/moneymuse/internal/http"
	authHandler "github.com/MrJamesThe3rd/moneymuse/internal/http/auth"
	budgetHandler "github.com/MrJamesThe3rd/moneymuse/internal/http/budget"
	categoryHandler "github.com/MrJamesThe3rd/moneymuse/internal/http/category"
	importHandler "github.com/MrJamesThe3rd/moneymuse/internal/http/importcsv"
	txHandler "github.com/MrJamesThe3rd/moneymuse/internal/http/transaction"
	userHandler "github.com/MrJamesThe3rd/moneymuse/internal/http/user"
	"github.com/MrJamesThe3rd/moneymuse/internal/importer"
	"github.com/MrJamesThe3rd/moneymuse/internal/storage"
	"github.com/MrJamesThe3rd/moneymuse/internal/suggest"
	suggestStore "github.com/MrJamesThe3rd/moneymuse/internal/suggest/store"
	"github.com/MrJamesThe3rd/moneymuse/internal/transaction"
	txStore "github.com/MrJamesThe3rd/moneymuse/internal/transaction/store"
	"github.com/MrJamesThe3rd/moneymuse/internal/user"
	userStore "github.com/MrJamesThe3rd/moneymuse/internal/user/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	tokens := auth.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	files := storage.NewLocal(cfg.Uploads.Dir)

	var (
		userService        = user.NewService(userStore.New(db))
		categoryService    = category.NewService(categoryStore.New(db))
		transactionService = transaction.NewService(txStore.New(db))
		budgetService      = budget.NewService(budgetStore.New(db), transactionService)
		suggestService     = suggest.NewService(suggestStore.New(db))
	)

	var (
		authH        = authHandler.NewHandler(userService, tokens)
		usersH       = userHandler.NewHandler(userService, files)
		categoriesH  = categoryHandler.NewHandler(categoryService)
		budgetsH     = budgetHandler.NewHandler(budgetService)
		transactionH = txHandler.NewHandler(transactionService, files)
		importH      = importHandler.NewHandler(importer.NewParser(), transactionService, suggestService)
	)

	router := museHttp.New(
		tokens,
		cfg.CORS.AllowedOrigins,
		files.BaseDir(),
		authH,
		usersH,
		categoriesH,
		budgetsH,
		transactionH,
		importH,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
