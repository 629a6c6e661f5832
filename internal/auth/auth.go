package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/legal-bench/backend/internal/config"
	"github.com/legal-bench/backend/internal/models"
)

// Handler guards the API behind a single operator account configured through
// the environment. With ADMIN_PASSWORD_HASH unset, auth is disabled and the
// middleware passes everything through (local development).
type Handler struct {
	secret       []byte
	email        string
	passwordHash string
}

func NewHandlerFromEnv() *Handler {
	return &Handler{
		secret:       []byte(config.Getenv("JWT_SECRET", "legal-bench-staging-signing-key-2026")),
		email:        strings.ToLower(os.Getenv("ADMIN_EMAIL")),
		passwordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}
}

func (h *Handler) Enabled() bool {
	return h.passwordHash != ""
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.Enabled() {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Auth is not configured"})
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Email and password are required"})
		return
	}

	if req.Email != h.email ||
		bcrypt.CompareHashAndPassword([]byte(h.passwordHash), []byte(req.Password)) != nil {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid email or password"})
		return
	}

	token, err := h.generateToken(req.Email)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate token"})
		return
	}
	writeJSON(w, http.StatusOK, models.AuthResponse{Token: token})
}

func (h *Handler) generateToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"sub": email,
		"exp": time.Now().Add(72 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.secret)
}

type contextKey string

const operatorKey contextKey = "operator"

// Middleware validates the Bearer token on protected routes.
func (h *Handler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authorization required"})
			return
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return h.secret, nil
		})
		if err != nil || !token.Valid {
			writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid or expired token"})
			return
		}

		sub := ""
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			sub, _ = claims["sub"].(string)
		}
		ctx := context.WithValue(r.Context(), operatorKey, sub)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
