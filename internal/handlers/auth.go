package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"swms-backend/internal/models"
	"swms-backend/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	OK    bool                 `json:"ok"`
	Token string               `json:"token,omitempty"`
	User  *models.UserResponse `json:"user,omitempty"`
}

func Register(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if req.Email == "" || req.Password == "" || req.Name == "" {
			utils.Error(w, http.StatusBadRequest, "name, email and password required")
			return
		}

		role := req.Role
		if role == "" {
			role = "citizen"
		}
		if role != "citizen" && role != "staff" && role != "admin" {
			utils.Error(w, http.StatusBadRequest, "invalid role")
			return
		}

		var exists int
		if err := db.Get(&exists, "SELECT COUNT(*) FROM users WHERE email = $1", req.Email); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Registration failed")
			return
		}
		if exists > 0 {
			utils.Error(w, http.StatusBadRequest, "Email already in use")
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Registration failed")
			return
		}

		id := uuid.New().String()
		_, err = db.Exec(`
			INSERT INTO users (id, email, password, name, role)
			VALUES ($1, $2, $3, $4, $5)
		`, id, req.Email, string(hashed), req.Name, role)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Registration failed")
			return
		}

		log.Printf("✅ Registered %s (%s)", req.Email, role)
		utils.JSON(w, http.StatusOK, map[string]string{"id": id})
	}
}

func Login(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		jwtSecret := os.Getenv("APP_JWT_SECRET")
		if jwtSecret == "" {
			log.Println("❌ JWT secret not configured")
			utils.JSON(w, http.StatusInternalServerError, LoginResponse{OK: false})
			return
		}

		var user models.User
		query := "SELECT * FROM users WHERE email = $1"
		if err := db.Get(&user, query, strings.ToLower(strings.TrimSpace(req.Email))); err != nil {
			log.Printf("❌ User not found: %s", req.Email)
			utils.JSON(w, http.StatusUnauthorized, LoginResponse{OK: false})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			log.Printf("❌ Invalid password for: %s", req.Email)
			utils.JSON(w, http.StatusUnauthorized, LoginResponse{OK: false})
			return
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": user.ID,
			"email":   user.Email,
			"name":    user.Name,
			"role":    user.Role,
			"iat":     time.Now().Unix(),
			"exp":     time.Now().Add(7 * 24 * time.Hour).Unix(),
		})

		tokenString, err := token.SignedString([]byte(jwtSecret))
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to create token")
			return
		}

		userResponse := user.ToUserResponse()
		log.Printf("✅ Login successful: %s (%s)", user.Email, user.Role)

		utils.JSON(w, http.StatusOK, LoginResponse{
			OK:    true,
			Token: tokenString,
			User:  &userResponse,
		})
	}
}
