package database

import (
	"log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

func SeedUsers(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM users"); err != nil {
		return err
	}

	if count > 0 {
		log.Println("✓ Users already seeded, skipping...")
		return nil
	}

	log.Println("🌱 Seeding demo users...")

	users := []struct {
		Email    string
		Password string
		Name     string
		Role     string
	}{
		{"admin@swms.local", "admin123", "Ward Admin", "admin"},
		{"staff@swms.local", "staff123", "Field Staff", "staff"},
		{"citizen@swms.local", "citizen123", "Demo Citizen", "citizen"},
	}

	for _, u := range users {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		_, err = db.Exec(`
			INSERT INTO users (id, email, password, name, role)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.New().String(), u.Email, string(hashed), u.Name, u.Role)
		if err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d users", len(users))
	return nil
}

func SeedBins(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM bins"); err != nil {
		return err
	}

	if count > 0 {
		log.Println("✓ Bins already seeded, skipping...")
		return nil
	}

	log.Println("🌱 Seeding bins...")

	bins := []struct {
		Name      string
		Address   string
		Latitude  float64
		Longitude float64
		FillLevel int
	}{
		{"Ward 1 - Market Square", "12 Market Rd", 12.9716, 77.5946, 45},
		{"Ward 1 - Bus Terminal", "3 Station Rd", 12.9733, 77.5952, 67},
		{"Ward 2 - School Gate", "88 School Ln", 12.9689, 77.5901, 23},
		{"Ward 2 - Hospital East", "41 Care Ave", 12.9702, 77.6011, 89},
		{"Ward 3 - Riverside Park", "7 River Walk", 12.9648, 77.5877, 12},
		{"Ward 3 - Temple Street", "19 Temple St", 12.9671, 77.5929, 96},
		{"Ward 4 - Vegetable Market", "5 Mandi Rd", 12.9758, 77.5989, 82},
		{"Ward 4 - Clock Tower", "1 Tower Sq", 12.9771, 77.5923, 34},
	}

	for _, b := range bins {
		status := "normal"
		if b.FillLevel >= 95 {
			status = "overflow"
		} else if b.FillLevel >= 80 {
			status = "full"
		}

		_, err := db.Exec(`
			INSERT INTO bins (id, name, address, latitude, longitude, fill_level, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, uuid.New().String(), b.Name, b.Address, b.Latitude, b.Longitude, b.FillLevel, status)
		if err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d bins", len(bins))
	return nil
}
