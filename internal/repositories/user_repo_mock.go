package repositories

import (
	"fmt"

	"belanja/internal/models"

	"github.com/google/uuid"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	src stateSource
}

// Create adds a new user.
func (r *MockUserRepository) Create(user *models.User) error {
	st, done := r.src.acquire()
	defer done()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	st.users[user.ID] = *user
	return nil
}

// GetByUsername returns a user by their username.
func (r *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	st, done := r.src.acquire()
	defer done()

	for _, user := range st.users {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with username %s: %w", username, ErrNotFound)
}

// GetByEmail returns a user by their email.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	st, done := r.src.acquire()
	defer done()

	for _, user := range st.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
}
