package services

import (
	"testing"

	"go-job/internals/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory sqlite database. The pool is capped at
// one connection so the memory database is shared by every statement and
// concurrent transactions serialize the way a single Postgres row lock would.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Address{}, &models.Account{}, &models.Employee{}))
	return db
}

func testRegisterInput(email string) RegisterInput {
	return RegisterInput{
		Email:     email,
		Password:  "correct-horse",
		Role:      models.RoleEmployee,
		FirstName: "Juan",
		LastName:  "Dela Cruz",
		Address: AddressInput{
			Street:   "123 Mabini St",
			Barangay: "Poblacion",
			City:     "Davao City",
			Province: "Davao del Sur",
		},
	}
}
