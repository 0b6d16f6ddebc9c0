package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/wayfarer-app/tripmate/docs"
	"github.com/wayfarer-app/tripmate/internal/auth"
	"github.com/wayfarer-app/tripmate/internal/config"
	"github.com/wayfarer-app/tripmate/internal/database"
	"github.com/wayfarer-app/tripmate/internal/expense"
	"github.com/wayfarer-app/tripmate/internal/expense/split"
	"github.com/wayfarer-app/tripmate/internal/itinerary"
	"github.com/wayfarer-app/tripmate/internal/notification"
	"github.com/wayfarer-app/tripmate/internal/poll"
	"github.com/wayfarer-app/tripmate/internal/settlement"
	"github.com/wayfarer-app/tripmate/internal/trip"
	"github.com/wayfarer-app/tripmate/internal/user"
	"github.com/wayfarer-app/tripmate/pkg/logging"
	mw "github.com/wayfarer-app/tripmate/pkg/middleware"
)

// @title           TripMate API
// @version         1.0
// @description     Group trip planning with shared expenses and debt settlement.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	slog.Info("connected to database")

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	splitFactory := split.NewFactory()

	// Notification feature (other features notify through it)
	notificationRepo := notification.NewRepository(db)
	notificationService := notification.NewService(notificationRepo)
	notificationHandler := notification.NewHandler(notificationService)

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo, jwtManager)
	userHandler := user.NewHandler(userService)

	// Trip feature
	tripRepo := trip.NewRepository(db)
	tripService := trip.NewService(tripRepo, notificationService)
	tripHandler := trip.NewHandler(tripService)

	// Poll feature
	pollRepo := poll.NewRepository(db)
	pollService := poll.NewService(pollRepo, tripService, notificationService)
	pollHandler := poll.NewHandler(pollService)

	// Itinerary feature
	itineraryRepo := itinerary.NewRepository(db)
	itineraryService := itinerary.NewService(itineraryRepo, tripService)
	itineraryHandler := itinerary.NewHandler(itineraryService)

	// Expense feature (with split factory injected)
	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(expenseRepo, tripService, splitFactory, notificationService)
	expenseHandler := expense.NewHandler(expenseService)

	// Settlement feature
	settlementRepo := settlement.NewRepository(db)
	settlementService := settlement.NewService(settlementRepo, tripService, notificationService)
	settlementHandler := settlement.NewHandler(settlementService)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	// Public routes
	r.Mount("/auth", userHandler.AuthRoutes())

	// Authenticated API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.Auth(jwtManager))

		r.Mount("/users", userHandler.Routes())
		r.Mount("/trips", tripHandler.Routes())
		r.Mount("/polls", pollHandler.Routes())
		r.Mount("/itinerary", itineraryHandler.Routes())
		r.Mount("/expenses", expenseHandler.Routes())
		r.Mount("/settlements", settlementHandler.Routes())
		r.Mount("/notifications", notificationHandler.Routes())
	})

	slog.Info("server starting", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
