package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	domain "authapi/backend/internal/domain/auth"
)

func (s *Server) registerRoutes() {
	s.router.Handle("/", http.HandlerFunc(s.handleHealth))
	s.router.Handle("/api/register", http.HandlerFunc(s.handleRegister))
	s.router.Handle("/api/login", http.HandlerFunc(s.handleLogin))
	s.router.Handle("/api/verify-token", http.HandlerFunc(s.handleVerifyToken))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "resource not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "API is running",
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(payload.Email) == "" ||
		strings.TrimSpace(payload.Password) == "" ||
		strings.TrimSpace(payload.Name) == "" {
		writeError(w, http.StatusBadRequest, "All fields required")
		return
	}

	user, err := s.authService.Register(r.Context(), payload.Email, payload.Password, payload.Name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingField):
			writeError(w, http.StatusBadRequest, "All fields required")
		case errors.Is(err, domain.ErrUserExists):
			writeError(w, http.StatusBadRequest, "User already exists")
		default:
			writeError(w, http.StatusBadRequest, "Registration failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Registration successful",
		"user":    user,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(payload.Email) == "" || strings.TrimSpace(payload.Password) == "" {
		writeError(w, http.StatusBadRequest, "Email and password required")
		return
	}

	token, user, err := s.authService.Authenticate(r.Context(), domain.Credentials{
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
		} else {
			writeError(w, http.StatusUnauthorized, "Authentication failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

func (s *Server) handleVerifyToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		writeError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	user, err := s.authService.VerifyToken(r.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			writeError(w, http.StatusUnauthorized, "Token expired")
		} else {
			// Covers invalid signatures, malformed payloads, unknown users and
			// store failures alike; callers learn nothing beyond rejection.
			writeError(w, http.StatusUnauthorized, "Invalid token")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Token valid",
		"user":    user,
	})
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
