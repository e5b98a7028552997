package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestParseToken_Valid(t *testing.T) {
	tokenString := signToken(t, jwt.MapClaims{
		"user_id": "u1",
		"email":   "citizen@swms.local",
		"name":    "Demo Citizen",
		"role":    "citizen",
	})

	claims, ok := ParseToken(tokenString, testSecret)
	if !ok {
		t.Fatalf("expected token to parse")
	}
	if claims.UserID != "u1" || claims.Role != "citizen" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	tokenString := signToken(t, jwt.MapClaims{"user_id": "u1", "role": "citizen"})
	if _, ok := ParseToken(tokenString, "other-secret"); ok {
		t.Fatalf("token signed with a different secret must not validate")
	}
}

func TestParseToken_MissingClaims(t *testing.T) {
	tokenString := signToken(t, jwt.MapClaims{"email": "x@y.z"})
	if _, ok := ParseToken(tokenString, testSecret); ok {
		t.Fatalf("token without user_id/role must not validate")
	}
}

func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	cases := []struct {
		name     string
		role     string
		allowed  []string
		wantCode int
	}{
		{"admin allowed", "admin", []string{"admin"}, http.StatusOK},
		{"staff allowed in multi-role gate", "staff", []string{"admin", "staff"}, http.StatusOK},
		{"citizen forbidden", "citizen", []string{"admin", "staff"}, http.StatusForbidden},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			handler := RequireRole(c.allowed...)(ok)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			ctx := context.WithValue(req.Context(), UserContextKey, UserClaims{UserID: "u1", Role: c.role})
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req.WithContext(ctx))

			if rec.Code != c.wantCode {
				t.Fatalf("got status %d, want %d", rec.Code, c.wantCode)
			}
		})
	}
}

func TestRequireRole_NoClaims(t *testing.T) {
	handler := RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", rec.Code)
	}
}

func TestSensorAuthorized(t *testing.T) {
	t.Setenv("SENSOR_KEY", "topsecret")

	req := httptest.NewRequest(http.MethodPost, "/api/bins/b1/sensor-update", nil)
	if SensorAuthorized(req) {
		t.Fatalf("request without key must be rejected")
	}

	req.Header.Set("X-Sensor-Key", "wrong")
	if SensorAuthorized(req) {
		t.Fatalf("request with wrong key must be rejected")
	}

	req.Header.Set("X-Sensor-Key", "topsecret")
	if !SensorAuthorized(req) {
		t.Fatalf("request with correct key must be accepted")
	}
}
