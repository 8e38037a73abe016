package database

import (
	"fmt"
	"log/slog"

	"github.com/yukikurage/taskboard-api/internal/models"
	"gorm.io/gorm"
)

// Models lists every persisted model in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Task{},
		&models.TaskAssignment{},
	}
}

// Migrate creates or updates tables, indexes and constraints for all models.
func Migrate(db *gorm.DB, log *slog.Logger) error {
	log.Info("running database migrations")
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	indexes := []struct {
		model interface{}
		name  string
	}{
		{&models.Task{}, "Status"},
		{&models.Task{}, "CreatedByID"},
		{&models.Task{}, "CreatedAt"},
		{&models.TaskAssignment{}, "UserID"},
	}
	for _, idx := range indexes {
		if !db.Migrator().HasIndex(idx.model, idx.name) {
			return fmt.Errorf("index on %s was not created", idx.name)
		}
	}

	log.Info("database migrations completed")
	return nil
}
