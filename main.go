package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	clerk "github.com/clerk/clerk-sdk-go/v2"
	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"connectSFUAPI/handlers"
	"connectSFUAPI/internal/cache"
	"connectSFUAPI/internal/gemini"
	"connectSFUAPI/internal/notification"
	"connectSFUAPI/middleware"
	"connectSFUAPI/services"

	_ "net/http/pprof"
)

var (
	dbPool              *pgxpool.Pool
	siteURL             string
	profileService      *services.ProfileService
	eventService        *services.EventService
	buddyService        *services.BuddyService
	rsvpService         *services.RSVPService
	emailService        *services.EmailService
	searchService       *services.SearchService
	notificationService *services.NotificationService
	scoringService      *services.ScoringService
	fcmService          *notification.FCMService
	redisCache          *cache.RedisCache
	geminiGenerator     *gemini.Generator
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	clerkSecretKey := os.Getenv("CLERK_SECRET_KEY")
	if clerkSecretKey == "" {
		log.Fatal("CLERK_SECRET_KEY environment variable is not set")
	}
	clerk.SetKey(clerkSecretKey)
	log.Println("Clerk initialized successfully")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	siteURL = os.Getenv("SITE_URL")
	if siteURL == "" {
		siteURL = "http://localhost:3333"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		log.Fatal("Failed to parse database URL:", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	dbPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal("Failed to create connection pool:", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Successfully connected to Postgres")

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		redisCache, err = cache.NewRedisCache(redisURL)
		if err != nil {
			log.Printf("Warning: Could not initialize Redis cache: %v", err)
			redisCache = nil
		} else if err := redisCache.Ping(ctx); err != nil {
			log.Printf("Warning: Redis unreachable, event cache disabled: %v", err)
			redisCache = nil
		} else {
			log.Println("Redis event cache initialized successfully")
		}
	}

	if geminiKey := os.Getenv("GEMINI_API_KEY"); geminiKey != "" {
		geminiGenerator, err = gemini.NewGenerator(ctx, geminiKey, os.Getenv("GEMINI_MODEL"))
		if err != nil {
			log.Printf("Warning: Could not initialize Gemini: %v", err)
			geminiGenerator = nil
		} else {
			log.Printf("Gemini initialized with model %s", geminiGenerator.Model())
		}
	} else {
		log.Println("Warning: GEMINI_API_KEY not set; smart matching falls back to neutral scores")
	}

	if resendKey := os.Getenv("RESEND_API_KEY"); resendKey != "" {
		emailService = services.NewEmailService(resendKey, siteURL)
	} else {
		log.Println("Warning: RESEND_API_KEY not set; confirmation emails disabled")
	}

	profileService = services.NewProfileService(dbPool)
	eventService = services.NewEventService(dbPool, redisCache)
	scoringService = services.NewScoringService(geminiGenerator)
	buddyService = services.NewBuddyService(dbPool, scoringService, eventService, siteURL)
	rsvpService = services.NewRSVPService(dbPool, emailService, eventService)
	searchService = services.NewSearchService(geminiGenerator)
	notificationService = services.NewNotificationService(dbPool)

	fcmService, err = notification.NewFCMService("./serviceAccountKey.json")
	if err != nil {
		log.Printf("Warning: Could not initialize FCM: %v", err)
	} else {
		notificationService.SetPushProvider(fcmService)
		log.Println("FCM Push Provider initialized successfully")
	}

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		log.Println("Closing database connection pool...")
		dbPool.Close()
		if redisCache != nil {
			redisCache.Close()
		}
	}()

	// Initialize handlers
	buddyHandler := handlers.NewBuddyHandler(buddyService, profileService, notificationService)
	eventHandler := handlers.NewEventHandler(eventService)
	rsvpHandler := handlers.NewRSVPHandler(rsvpService, profileService)
	searchHandler := handlers.NewSearchHandler(searchService)
	notificationHandler := handlers.NewNotificationHandler(notificationService, profileService)
	emailHandler := handlers.NewEmailHandler(emailService)
	profileHandler := handlers.NewProfileHandler(profileService)

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))
	r.PathPrefix("/debug/pprof/").Handler(middleware.PprofSecurityMiddleware(http.DefaultServeMux))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "connectSFU-api"}`))
	}).Methods("GET")

	// -------------------------------------------------------------------------
	// API V1 SUBROUTER
	// -------------------------------------------------------------------------
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/events", eventHandler.GetEvents).Methods("GET")
	api.HandleFunc("/events/{id}", eventHandler.GetEventByID).Methods("GET")
	api.HandleFunc("/gemini-parse", searchHandler.ParseSearchQuery).Methods("POST")
	api.HandleFunc("/send-email", emailHandler.SendEmail).Methods("POST")

	// Internal: called by the matcher after a successful commit
	api.HandleFunc("/buddy-notify", buddyHandler.NotifyMatch).Methods("POST")

	// -------------------------------------------------------------------------
	// PROTECTED ROUTES (REQUIRE AUTH HEADER)
	// -------------------------------------------------------------------------
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.ClerkAuthMiddleware)

	protected.HandleFunc("/buddy-match", buddyHandler.CreateBuddyMatch).Methods("POST")
	protected.HandleFunc("/buddy-match-smart", buddyHandler.CreateSmartBuddyMatch).Methods("POST")

	protected.HandleFunc("/rsvp", rsvpHandler.CreateRSVP).Methods("POST")
	protected.HandleFunc("/rsvps", rsvpHandler.GetUserRSVPs).Methods("GET")

	protected.HandleFunc("/notifications", notificationHandler.GetNotifications).Methods("GET")
	protected.HandleFunc("/notifications/{id}/read", notificationHandler.MarkAsRead).Methods("PUT")
	protected.HandleFunc("/notifications/register-device", notificationHandler.RegisterDevice).Methods("POST")

	protected.HandleFunc("/profile", profileHandler.GetProfile).Methods("GET")

	// CORS configuration
	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins([]string{"*"}),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Pprof-Secret"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorilllaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}
