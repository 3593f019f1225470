package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/sillaskon/incidentreporthub-be/internal/auth"
	"github.com/sillaskon/incidentreporthub-be/internal/services"
)

// AuthHandler handles registration and token issuance.
type AuthHandler struct {
	service services.UserServiceProvider
	issuer  *auth.Issuer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.UserServiceProvider, issuer *auth.Issuer) *AuthHandler {
	return &AuthHandler{service: service, issuer: issuer}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// Register handles new user registration.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Username == "" || payload.Password == "" || payload.Email == "" {
		writeError(w, http.StatusBadRequest, "username, password and email are required")
		return
	}

	_, err := h.service.Register(payload.Username, payload.Password, payload.Email)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateUsername) {
			writeError(w, http.StatusBadRequest, "Username already exists")
			return
		}
		log.Error().Err(err).Str("username", payload.Username).Msg("Failed to register user")
		writeError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"msg": "User registered successfully"})
}

// Token handles user authentication; the body is form-encoded for
// compatibility with OAuth2 password-flow clients.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form body")
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := h.service.Authenticate(username, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn().Str("username", username).Msg("Failed authentication attempt")
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Error().Err(err).Str("username", username).Msg("Failed to authenticate user")
		writeError(w, http.StatusInternalServerError, "Failed to authenticate user")
		return
	}

	token, err := h.issuer.Issue(user.Username)
	if err != nil {
		log.Error().Err(err).Str("username", user.Username).Msg("Failed to sign token")
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}
