package initializers

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectToDb opens the PostgreSQL connection pool. TranslateError is on so
// unique-constraint violations surface as gorm.ErrDuplicatedKey regardless of
// driver.
func ConnectToDb(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}
