package identity

import (
	"strings"
	"time"

	"github.com/colaai/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role represents the role of a user
type Role string

const (
	RoleOwner Role = "owner" // Owns and manages a store
	RoleAdmin Role = "admin" // Platform operator
)

// Password cost for bcrypt
const bcryptCost = 12

// User represents a platform user. Store owners are linked to their
// tenant via TenantID; platform admins have no tenant.
type User struct {
	shared.BaseEntity
	TenantID      *uuid.UUID `gorm:"type:uuid;index"`
	Email         string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	EmailVerified bool       `gorm:"not null;default:false"`
	DisplayName   string     `gorm:"type:varchar(100)"`
	Role          Role       `gorm:"type:varchar(20);not null;default:'owner'"`
	PasswordHash  string     `gorm:"type:varchar(100);not null"`
	LastLoginAt   *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new store-owner user
func NewUser(tenantID uuid.UUID, email, displayName, password string) (*User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		TenantID:     &tenantID,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		DisplayName:  displayName,
		Role:         RoleOwner,
		PasswordHash: string(hash),
	}, nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// MarkEmailVerified records that the user's email has been confirmed
func (u *User) MarkEmailVerified() {
	u.EmailVerified = true
	u.UpdatedAt = time.Now()
}

// RecordLogin updates the last login timestamp
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.UpdatedAt = time.Now()
}

// IsAdmin returns true for platform operators
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}
