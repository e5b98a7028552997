package main

import (
	"log"
	"os"

	"swms-backend/internal/database"

	"github.com/joho/godotenv"
)

// Standalone migration runner. Applies the schema and seeds initial data
// without starting the HTTP server. Useful for deploy hooks and local setup.
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Get database URL
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	// Connect to database
	db, err := database.Connect(dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Connected to database successfully")

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully!")

	if os.Getenv("SKIP_SEED") == "" {
		if err := database.SeedUsers(db); err != nil {
			log.Fatalf("User seeding failed: %v", err)
		}
		if err := database.SeedBins(db); err != nil {
			log.Fatalf("Bin seeding failed: %v", err)
		}
		log.Println("Seed data loaded")
	}

	// Summary for operator sanity checks
	var summary struct {
		Users      int `db:"users"`
		Bins       int `db:"bins"`
		Complaints int `db:"complaints"`
	}
	err = db.Get(&summary, `
		SELECT
			(SELECT COUNT(*) FROM users) AS users,
			(SELECT COUNT(*) FROM bins) AS bins,
			(SELECT COUNT(*) FROM complaints) AS complaints
	`)
	if err != nil {
		log.Fatalf("Failed to query summary: %v", err)
	}

	log.Println("============================================================")
	log.Println("MIGRATION SUMMARY")
	log.Println("============================================================")
	log.Printf("Users:      %d", summary.Users)
	log.Printf("Bins:       %d", summary.Bins)
	log.Printf("Complaints: %d", summary.Complaints)
	log.Println("============================================================")
}
