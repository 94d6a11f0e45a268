package initializers

import (
	"fmt"

	"go-job/internals/models"

	"gorm.io/gorm"
)

func SyncDatabase(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Address{},
		&models.Account{},
		&models.Employee{},
	)
	if err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	return nil
}
