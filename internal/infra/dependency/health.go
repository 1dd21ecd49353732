package dependency

import (
	"context"

	"gorm.io/gorm"

	"github.com/residence-hub/backend/internal/integration/entrypoint/controller"
)

func pingDatabase(db *gorm.DB) controller.HealthCheck {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
