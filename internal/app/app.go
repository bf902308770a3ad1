package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tboivin/swipemeal-backend/internal/adapter/blob"
	"github.com/tboivin/swipemeal-backend/internal/adapter/postgres"
	householdrepo "github.com/tboivin/swipemeal-backend/internal/adapter/postgres/household"
	mealplanrepo "github.com/tboivin/swipemeal-backend/internal/adapter/postgres/mealplan"
	reciperepo "github.com/tboivin/swipemeal-backend/internal/adapter/postgres/recipe"
	settingsrepo "github.com/tboivin/swipemeal-backend/internal/adapter/postgres/settings"
	"github.com/tboivin/swipemeal-backend/internal/auth"
	"github.com/tboivin/swipemeal-backend/internal/config"
	householdsvc "github.com/tboivin/swipemeal-backend/internal/service/household"
	mealplansvc "github.com/tboivin/swipemeal-backend/internal/service/mealplan"
	recipesvc "github.com/tboivin/swipemeal-backend/internal/service/recipe"
	settingssvc "github.com/tboivin/swipemeal-backend/internal/service/settings"
	"github.com/tboivin/swipemeal-backend/internal/transport/middleware"
	"github.com/tboivin/swipemeal-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires repositories, services and handlers, and serves HTTP
// until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		logger.Info("database migrations applied")
	}

	recipes := reciperepo.New(pool)
	households := householdrepo.New(pool)
	mealplans := mealplanrepo.New(pool)
	settings := settingsrepo.New(pool)
	txm := postgres.NewTxManager(pool)

	images := blob.NewFSStore(cfg.Storage.RootDir, cfg.Storage.PublicBaseURL)
	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)

	recipeService := recipesvc.NewService(logger, recipes, households, images)
	householdService := householdsvc.NewService(
		logger, households, txm,
		cfg.Household.InviteTTL, cfg.Household.CodeMaxAttempts,
	)
	mealPlanService := mealplansvc.NewService(logger, mealplans, recipes)
	settingsService := settingssvc.NewService(logger, settings)

	handlers := rest.Handlers{
		Health:     rest.NewHealthHandler(pool, BuildVersion()),
		Recipes:    rest.NewRecipeHandler(recipeService, logger),
		Households: rest.NewHouseholdHandler(householdService, logger),
		MealPlans:  rest.NewMealPlanHandler(mealPlanService, logger),
		Settings:   rest.NewSettingsHandler(settingsService, logger),
	}

	mux := rest.NewRouter(handlers, cfg.Storage.RootDir)

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(tokens),
	)(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}
