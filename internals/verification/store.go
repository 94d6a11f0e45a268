// Package verification holds the server-side registration code store. Codes
// are generated here, emailed to the user, and never returned to the client;
// registration only completes after the entered code was verified against
// this store.
package verification

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"
)

var (
	ErrInvalidCode     = errors.New("invalid verification code")
	ErrCodeExpired     = errors.New("verification code expired or not issued")
	ErrTooManyAttempts = errors.New("too many failed verification attempts")
	ErrResendCooldown  = errors.New("verification code requested too recently")
)

// Store issues and checks one-time registration codes keyed by email.
//
// Issue replaces any previous code for the email (the old one stops working)
// and enforces a resend cooldown. Verify consumes the code on success and
// leaves a short-lived verified marker behind; ConsumeVerified is the
// one-shot check registration performs against that marker.
type Store interface {
	Issue(ctx context.Context, email string) (string, error)
	Verify(ctx context.Context, email, code string) error
	ConsumeVerified(ctx context.Context, email string) (bool, error)
}

// Options tunes code lifetime and abuse limits. Zero values fall back to the
// defaults below.
type Options struct {
	CodeTTL        time.Duration // default 10m
	VerifiedTTL    time.Duration // default 15m
	MaxAttempts    int           // default 3
	ResendCooldown time.Duration // default 60s
}

func (o Options) withDefaults() Options {
	if o.CodeTTL <= 0 {
		o.CodeTTL = 10 * time.Minute
	}
	if o.VerifiedTTL <= 0 {
		o.VerifiedTTL = 15 * time.Minute
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 3
	}
	if o.ResendCooldown <= 0 {
		o.ResendCooldown = time.Minute
	}
	return o
}

// GenerateCode returns a uniformly random 6-digit code in [100000, 999999],
// drawn from crypto/rand.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generating verification code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}
