package services

import (
	"errors"
	"fmt"
	"time"

	"belanja/internal/models"
	"belanja/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login, and JWT validation. The token's
// user_id claim is the customer identity the cart and order workflows key on.
type AuthService struct {
	userRepo repositories.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		secret:   []byte(jwtSecret),
		tokenTTL: 24 * time.Hour,
	}
}

// RegisterUser registers a new user, hashing their password before storing.
func (s *AuthService) RegisterUser(user *models.User) error {
	if _, err := s.userRepo.GetByUsername(user.Username); err == nil {
		return fmt.Errorf("username '%s': %w", user.Username, repositories.ErrAlreadyExists)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	if _, err := s.userRepo.GetByEmail(user.Email); err == nil {
		return fmt.Errorf("email '%s': %w", user.Email, repositories.ErrAlreadyExists)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// LoginUser authenticates a user and returns a signed JWT. Wrong usernames
// and wrong passwords produce the same error, so a caller cannot probe for
// which accounts exist.
func (s *AuthService) LoginUser(username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      now.Add(s.tokenTTL).Unix(),
		"iat":      now.Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT, returning its claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
