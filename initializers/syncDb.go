package initializers

import (
	"fmt"
	"log"

	"github.com/Kariqs/justdrops-api/models"
	"gorm.io/gorm"
)

func SyncDatabase(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Println("Database synced successfully.")
	return nil
}
