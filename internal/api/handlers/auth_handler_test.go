package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sillaskon/incidentreporthub-be/internal/auth"
	"github.com/sillaskon/incidentreporthub-be/internal/models"
	"github.com/sillaskon/incidentreporthub-be/internal/services"
)

type stubUserService struct {
	registerErr error
	authErr     error
	user        models.User
}

func (s *stubUserService) Register(username, password, email string) (models.User, error) {
	if s.registerErr != nil {
		return models.User{}, s.registerErr
	}
	return s.user, nil
}

func (s *stubUserService) Authenticate(username, password string) (models.User, error) {
	if s.authErr != nil {
		return models.User{}, s.authErr
	}
	return s.user, nil
}

func (s *stubUserService) GetUserByUsername(username string) (models.User, error) {
	return s.user, nil
}

func (s *stubUserService) ListUsers() ([]models.User, error) {
	return nil, nil
}

func postToken(t *testing.T, h *AuthHandler, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.Token(rec, req)
	return rec
}

func TestTokenInvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&stubUserService{authErr: services.ErrInvalidCredentials},
		auth.NewIssuer("test-secret", time.Minute))

	rec := postToken(t, h, "alice", "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
}

func TestTokenStorageFailure(t *testing.T) {
	// A store outage during authentication is not a credential problem.
	h := NewAuthHandler(&stubUserService{authErr: fmt.Errorf("%w: disk I/O error", services.ErrStorageUnavailable)},
		auth.NewIssuer("test-secret", time.Minute))

	rec := postToken(t, h, "alice", "secret")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Invalid credentials")
}

func TestTokenSuccess(t *testing.T) {
	h := NewAuthHandler(&stubUserService{user: models.User{ID: "u1", Username: "alice", Email: "a@x.com"}},
		auth.NewIssuer("test-secret", time.Minute))

	rec := postToken(t, h, "alice", "secret")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token_type":"bearer"`)
	assert.Contains(t, rec.Body.String(), "access_token")
}
