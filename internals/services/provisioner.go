package services

import (
	"context"
	"errors"
	"fmt"

	"go-job/internals/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AddressInput carries the four required address fields of a registration.
type AddressInput struct {
	Street   string
	Barangay string
	City     string
	Province string
}

// RegisterInput is a fully validated registration request. The HTTP layer is
// responsible for presence checks, password length and confirmation match
// before this reaches the service.
type RegisterInput struct {
	Email      string
	Password   string
	Role       string
	FirstName  string
	LastName   string
	MiddleName string
	Address    AddressInput
}

// Provisioner creates accounts transactionally: address, account and the
// role profile row either all exist afterwards or none of them do.
type Provisioner struct {
	DB *gorm.DB
}

func NewProvisioner(db *gorm.DB) *Provisioner {
	return &Provisioner{DB: db}
}

// Register inserts the address row first so the profile row created last can
// reference it, hashing the password with a fresh per-account salt. Any step
// failing rolls the whole transaction back; a unique-index violation on the
// email is reported as ErrDuplicateEmail, everything else is collapsed into
// ErrProvisionFailed so no database detail leaks to the caller.
func (p *Provisioner) Register(ctx context.Context, in RegisterInput) (uint, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hashing password: %w", err)
	}

	role := in.Role
	if role == "" {
		role = models.RoleEmployee
	}

	var accountID uint
	err = p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		address := models.Address{
			Street:   in.Address.Street,
			Barangay: in.Address.Barangay,
			City:     in.Address.City,
			Province: in.Address.Province,
		}
		if err := tx.Create(&address).Error; err != nil {
			return err
		}

		account := models.Account{
			Email:    in.Email,
			Password: string(hash),
			Role:     role,
		}
		if err := tx.Create(&account).Error; err != nil {
			return err
		}
		accountID = account.ID

		employee := models.Employee{
			AccountID:  account.ID,
			FirstName:  in.FirstName,
			LastName:   in.LastName,
			MiddleName: in.MiddleName,
			AddressID:  address.ID,
		}
		return tx.Create(&employee).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("%w: %v", ErrProvisionFailed, err)
	}

	return accountID, nil
}
