package services

import (
	"context"
	"errors"
	"fmt"

	"go-job/internals/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Auth verifies password credentials against stored bcrypt hashes.
type Auth struct {
	DB *gorm.DB
}

func NewAuth(db *gorm.DB) *Auth {
	return &Auth{DB: db}
}

// Login checks email+password and, when requestedRole is non-empty, that the
// account actually holds that role. Lookup misses, hash mismatches and role
// mismatches all surface as credential errors so callers cannot tell them
// apart from the outside.
func (a *Auth) Login(ctx context.Context, email, password, requestedRole string) (*models.Account, error) {
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	var account models.Account
	if err := a.DB.WithContext(ctx).Where("account_email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up account: %w", err)
	}

	// SSO-only accounts have no password hash and can never password-login.
	if account.Password == "" {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if requestedRole != "" && account.Role != requestedRole {
		return nil, ErrRoleMismatch
	}

	return &account, nil
}
