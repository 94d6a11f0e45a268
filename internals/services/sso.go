package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-job/internals/models"

	"gorm.io/gorm"
)

// GoogleUser is the subset of the provider's userinfo payload we care about.
type GoogleUser struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// SSOAccounts links provider identities to local accounts.
type SSOAccounts struct {
	DB *gorm.DB
}

func NewSSOAccounts(db *gorm.DB) *SSOAccounts {
	return &SSOAccounts{DB: db}
}

const providerGoogle = "google"

// ResolveGoogleUser finds or creates the local account for a Google identity:
//  1. match on (provider, sso_id) -> refresh the stored token and expiry
//  2. match on email -> link the provider identity to the existing account
//  3. otherwise create a new SSO-only account with the employee role
//
// Any database failure surfaces as ErrUserCreationFailed.
func (s *SSOAccounts) ResolveGoogleUser(ctx context.Context, gu GoogleUser, accessToken string, expiry time.Time) (*models.Account, error) {
	if expiry.IsZero() {
		expiry = time.Now().Add(time.Hour)
	}
	db := s.DB.WithContext(ctx)

	var account models.Account
	err := db.Where("sso_provider = ? AND sso_id = ?", providerGoogle, gu.ID).First(&account).Error
	if err == nil {
		updates := map[string]interface{}{
			"sso_token":  accessToken,
			"sso_expiry": expiry,
		}
		if err := db.Model(&account).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("%w: refreshing token: %v", ErrUserCreationFailed, err)
		}
		return &account, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrUserCreationFailed, err)
	}

	// No linked identity yet; an existing password account with the same
	// email gets the provider attached instead of a second account.
	err = db.Where("account_email = ?", gu.Email).First(&account).Error
	if err == nil {
		updates := map[string]interface{}{
			"sso_provider": providerGoogle,
			"sso_id":       gu.ID,
			"sso_token":    accessToken,
			"sso_expiry":   expiry,
		}
		if err := db.Model(&account).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("%w: linking account: %v", ErrUserCreationFailed, err)
		}
		return &account, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrUserCreationFailed, err)
	}

	account = models.Account{
		Email:       gu.Email,
		Role:        models.RoleEmployee,
		SSOProvider: providerGoogle,
		SSOID:       gu.ID,
		SSOToken:    accessToken,
		SSOExpiry:   &expiry,
	}
	if err := db.Create(&account).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserCreationFailed, err)
	}
	return &account, nil
}
