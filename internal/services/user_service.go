package services

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sillaskon/incidentreporthub-be/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(username, password, email string) (models.User, error)
	Authenticate(username, password string) (models.User, error)
	GetUserByUsername(username string) (models.User, error)
	ListUsers() ([]models.User, error)
}

// UserService provides business logic for user accounts.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a new user, hashing their password. The username must be
// unique; uniqueness is enforced by the store so concurrent registrations
// cannot both succeed.
func (s *UserService) Register(username, password, email string) (models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	stmt, err := s.db.Prepare("INSERT INTO users(id, username, email, password_hash) VALUES(?, ?, ?, ?)")
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(user.ID, user.Username, user.Email, user.PasswordHash)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return models.User{}, ErrDuplicateUsername
		}
		return models.User{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	// Return user without password hash
	user.PasswordHash = ""
	return user, nil
}

// Authenticate verifies a user's credentials. A missing user and a wrong
// password return the same error so usernames cannot be enumerated.
func (s *UserService) Authenticate(username, password string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, username, email, password_hash, created_at FROM users WHERE username = ?", username)
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}

// GetUserByUsername retrieves a single user by username.
func (s *UserService) GetUserByUsername(username string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, username, email, created_at FROM users WHERE username = ?", username)
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, fmt.Errorf("user %s not found", username)
		}
		return models.User{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return user, nil
}

// ListUsers retrieves all users, without password hashes.
func (s *UserService) ListUsers() ([]models.User, error) {
	rows, err := s.db.Query("SELECT id, username, email, created_at FROM users ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
