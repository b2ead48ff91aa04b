package user

import (
	"fmt"
	"strings"
	"time"

	vo "subtrack/internal/domain/user/valueobjects"
)

// User is the minimal user aggregate the subscription core needs: an identity
// that resolves to an email address for renewal reminders.
type User struct {
	id        uint
	email     *vo.Email
	name      string
	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a new user aggregate
func NewUser(email *vo.Email, name string) (*User, error) {
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name is required")
	}

	now := time.Now().UTC()
	return &User{
		email:     email,
		name:      strings.TrimSpace(name),
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructUser rebuilds a user from persistence
func ReconstructUser(id uint, email *vo.Email, name string, createdAt, updatedAt time.Time) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}

	return &User{
		id:        id,
		email:     email,
		name:      name,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

// ID returns the user ID
func (u *User) ID() uint {
	return u.id
}

// Email returns the user's email
func (u *User) Email() *vo.Email {
	return u.email
}

// Name returns the user's display name
func (u *User) Name() string {
	return u.name
}

// CreatedAt returns when the user was created
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// UpdatedAt returns when the user was last updated
func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// SetID sets the user ID (only for persistence layer use)
func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}
