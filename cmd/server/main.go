package main

import (
	"log"
	"net/http"
	"os"

	"swms-backend/internal/database"
	"swms-backend/internal/handlers"
	"swms-backend/internal/middleware"
	"swms-backend/internal/services"
	"swms-backend/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("🚀 SWMS BACKEND SERVER STARTING")
	log.Println("═══════════════════════════════════════════════════════════════════")

	// Load .env file
	log.Println("📂 Loading environment variables...")
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Warning: .env file not found, using environment variables from system")
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// Get database URL
	log.Println("🔍 Checking DATABASE_URL environment variable...")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: DATABASE_URL environment variable is required")
		log.Println("   Please set DATABASE_URL in your deployment variables or .env file")
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal("DATABASE_URL environment variable is required")
	}
	log.Println("✅ DATABASE_URL found")

	// Connect to database
	log.Println("🔌 Connecting to database...")
	db, err := database.Connect(dbURL)
	if err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: Database connection failed")
		log.Printf("   Error: %v", err)
		log.Println("   This is usually caused by:")
		log.Println("   1. Wrong DATABASE_URL format")
		log.Println("   2. PostgreSQL service is down")
		log.Println("   3. Network connectivity issue")
		log.Println("   4. Invalid credentials")
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal(err)
	}
	defer db.Close()
	log.Println("✅ Database connection established")

	// Run migrations
	log.Println("🔄 Running database migrations...")
	if err := database.Migrate(db); err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: Database migrations failed")
		log.Printf("   Error: %v", err)
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal(err)
	}
	log.Println("✅ Database migrations completed")

	// Seed database
	log.Println("🌱 Seeding database with initial data...")
	if err := database.SeedUsers(db); err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: User seeding failed")
		log.Printf("   Error: %v", err)
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal(err)
	}
	log.Println("✅ Users seeded successfully")

	if err := database.SeedBins(db); err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: Bins seeding failed")
		log.Printf("   Error: %v", err)
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal(err)
	}
	log.Println("✅ Bins seeded successfully")

	// Initialize Firebase Cloud Messaging
	// Supports both file path and base64-encoded credentials (for cloud deployments)
	var fcmService *services.FCMService
	fcmCredsBase64 := os.Getenv("FIREBASE_CREDENTIALS_BASE64")

	if fcmCredsBase64 != "" {
		fcmService, err = services.NewFCMServiceFromBase64(fcmCredsBase64)
		if err != nil {
			log.Printf("⚠️  Failed to initialize FCM from base64: %v (push notifications disabled)", err)
			fcmService = nil
		} else {
			log.Println("✅ Firebase Cloud Messaging initialized from base64 credentials")
		}
	} else {
		fcmCredentialsFile := os.Getenv("FIREBASE_CREDENTIALS_FILE")
		if fcmCredentialsFile == "" {
			fcmCredentialsFile = "./firebase-service-account.json"
		}

		fcmService, err = services.NewFCMService(fcmCredentialsFile)
		if err != nil {
			log.Printf("⚠️  Failed to initialize FCM from file: %v (push notifications disabled)", err)
			fcmService = nil
		} else {
			log.Println("✅ Firebase Cloud Messaging initialized from file")
		}
	}

	// Initialize WebSocket hub
	wsHub := websocket.NewHub()
	go wsHub.Run()
	log.Println("✅ WebSocket hub started")

	// Domain configuration
	scorer := services.NewPriorityScorer(services.ScorerConfigFromEnv())
	alertMode := services.ParseAlertMode(os.Getenv("BIN_ALERT_MODE"))
	collectionThreshold := handlers.CollectionThresholdFromEnv()
	log.Printf("✅ Priority scorer and route config loaded (alert mode: %s, collection threshold: %d%%)", alertMode, collectionThreshold)

	// Create router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Sensor-Key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Authentication routes (no auth required)
	r.Post("/api/auth/register", handlers.Register(db))
	r.Post("/api/auth/login", handlers.Login(db))

	// WebSocket endpoint (authentication handled in handler via query param)
	r.Get("/ws", websocket.HandleWebSocket(wsHub))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Sensor webhook (shared-secret auth, checked in handler)
		r.Post("/bins/{id}/sensor-update", handlers.SensorUpdate(db, wsHub, fcmService, alertMode))

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth)

			// Bins
			r.Get("/bins", handlers.GetBins(db))
			r.With(middleware.RequireRole("admin")).Post("/bins", handlers.CreateBin(db))
			r.With(middleware.RequireRole("staff", "admin")).Post("/bins/{id}/collected", handlers.MarkCollected(db, wsHub))

			// Complaints
			r.With(middleware.RequireRole("citizen")).Post("/complaints", handlers.CreateComplaint(db, wsHub, scorer))
			r.Get("/complaints/mine", handlers.GetMyComplaints(db))
			r.With(middleware.RequireRole("staff", "admin")).Get("/complaints", handlers.GetComplaints(db))
			r.With(middleware.RequireRole("staff", "admin")).Get("/complaints/prioritized", handlers.GetPrioritizedComplaints(db))
			r.With(middleware.RequireRole("staff", "admin")).Patch("/complaints/{id}/status", handlers.UpdateComplaintStatus(db, wsHub))

			// Resolution anchoring
			r.With(middleware.RequireRole("staff", "admin")).Post("/complaints/{id}/anchor", handlers.AnchorResolution(db))
			r.Get("/complaints/{id}/anchor", handlers.VerifyResolution(db))

			// Tasks
			r.With(middleware.RequireRole("admin")).Post("/tasks", handlers.CreateTask(db, wsHub, fcmService))
			r.With(middleware.RequireRole("staff")).Get("/tasks/mine", handlers.GetMyTasks(db))
			r.With(middleware.RequireRole("staff")).Post("/tasks/{id}/complete", handlers.CompleteTask(db, wsHub))

			// Collection route optimization
			r.With(middleware.RequireRole("staff", "admin")).Get("/routes/optimize", handlers.OptimizeRoute(db, collectionThreshold))

			// Analytics (admin only)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole("admin"))

				r.Get("/analytics/patterns", handlers.GetPatterns(db))
				r.Get("/analytics/recurring-areas", handlers.GetRecurringAreas(db))
				r.Get("/analytics/staff-efficiency", handlers.GetStaffEfficiency(db))
				r.Get("/analytics/export.csv", handlers.ExportCSV(db))
			})

			// Citizen engagement
			r.Get("/engagement/me", handlers.GetMyEngagement(db))
			r.Get("/engagement/leaderboard", handlers.GetLeaderboard(db))
			r.With(middleware.RequireRole("admin")).Post("/engagement/award", handlers.AwardPoints(db))

			// Team management (admin only)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole("admin"))

				r.Get("/teams", handlers.GetTeams(db))
				r.Post("/teams", handlers.CreateTeam(db))
				r.Put("/teams/{id}", handlers.UpdateTeam(db))
				r.Delete("/teams/{id}", handlers.DeleteTeam(db))
			})

			// FCM token registration
			r.Post("/fcm-token", handlers.RegisterFCMToken(db))
		})
	})

	// Get port
	log.Println("🔍 Checking PORT environment variable...")
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		log.Printf("⚠️  PORT not set, using default: %s", port)
	} else {
		log.Printf("✅ PORT found: %s", port)
	}

	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("✅ ALL INITIALIZATION COMPLETE")
	log.Printf("🚀 Server starting on http://localhost:%s", port)
	log.Println("🔌 Ready to accept requests!")
	log.Println("═══════════════════════════════════════════════════════════════════")

	// Start server
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: Server failed to start")
		log.Printf("   Error: %v", err)
		log.Printf("   Port: %s", port)
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal(err)
	}
}
