package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/virtualfridge/backend/internal/middleware"
	"github.com/virtualfridge/backend/internal/models"
	"github.com/virtualfridge/backend/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongPassword      = errors.New("current password does not match")
	ErrPasswordTooShort   = errors.New("new password must be at least 3 characters")
	ErrEmptyFields        = errors.New("username and password must not be empty")
	ErrReservedUser       = errors.New("the admin account cannot be deleted")
	ErrUnknownUser        = errors.New("unknown user")
)

// MinPasswordLength is the minimum accepted length for new passwords.
const MinPasswordLength = 3

type AuthService struct {
	store     *store.Store
	jwtSecret string
}

func NewAuthService(st *store.Store, jwtSecret string) *AuthService {
	return &AuthService{
		store:     st,
		jwtSecret: jwtSecret,
	}
}

// Login checks the credentials and returns a session token. A first
// login lazily creates the user's empty product list so every known
// user has an inventory entry.
func (s *AuthService) Login(username, password string) (string, error) {
	users := s.store.LoadUsers()
	user, ok := users[username]
	if !ok {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	products := s.store.LoadProducts()
	if _, ok := products[username]; !ok {
		products[username] = []models.Product{}
		if err := s.store.SaveProducts(products); err != nil {
			return "", fmt.Errorf("failed to initialize product list: %w", err)
		}
	}

	return s.generateToken(username, user.Role)
}

// ChangePassword replaces the user's password after verifying the
// current one. New passwords must have at least MinPasswordLength
// characters.
func (s *AuthService) ChangePassword(username, currentPassword, newPassword string) error {
	users := s.store.LoadUsers()
	user, ok := users[username]
	if !ok {
		return ErrUnknownUser
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}
	if len(newPassword) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	users[username] = user
	return s.store.SaveUsers(users)
}

// AddUser inserts or overwrites an account with the user role. Admin
// operation; the handler enforces the role gate.
func (s *AuthService) AddUser(username, password string) error {
	if username == "" || password == "" {
		return ErrEmptyFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	users := s.store.LoadUsers()
	role := models.RoleUser
	if existing, ok := users[username]; ok && existing.Role == models.RoleAdmin {
		role = models.RoleAdmin
	}
	users[username] = models.User{PasswordHash: string(hash), Role: role}
	return s.store.SaveUsers(users)
}

// DeleteUser removes an account. The reserved admin account is never
// removed.
func (s *AuthService) DeleteUser(username string) error {
	if username == models.AdminUsername {
		return ErrReservedUser
	}
	users := s.store.LoadUsers()
	if _, ok := users[username]; !ok {
		return ErrUnknownUser
	}
	delete(users, username)
	return s.store.SaveUsers(users)
}

// ListUsernames returns all known usernames for the admin view.
func (s *AuthService) ListUsernames() []string {
	users := s.store.LoadUsers()
	names := make([]string, 0, len(users))
	for name := range users {
		names = append(names, name)
	}
	return names
}

func (s *AuthService) generateToken(username, role string) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"role":     role,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) ValidateToken(tokenString string) (*middleware.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		username, ok := claims["username"].(string)
		if !ok || username == "" {
			return nil, errors.New("invalid token claims")
		}
		role, _ := claims["role"].(string)

		return &middleware.TokenClaims{
			Username: username,
			Role:     role,
		}, nil
	}

	return nil, errors.New("invalid token")
}
