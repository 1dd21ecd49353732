package persistence

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/residence-hub/backend/internal/domain/entity"
	"github.com/residence-hub/backend/internal/integration/persistence/model"
)

// openTestDB returns a migrated in-memory database private to the test.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(
		&model.ResidentModel{},
		&model.PaymentModel{},
		&model.ExpenseModel{},
		&model.AuditLogModel{},
		&model.EmailQueueModel{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedResident(t *testing.T, db *gorm.DB, name, identity, room string, rent int64, active bool) *entity.Resident {
	t.Helper()

	r := entity.NewResident(name, identity, "", strings.ToLower(name)+"@example.com", room, day(2024, time.January, 1), decimal.NewFromInt(rent), "")
	if !active {
		r.CheckOut(day(2024, time.March, 1))
	}
	if err := db.Create(model.ResidentFromEntity(r)).Error; err != nil {
		t.Fatalf("failed to seed resident: %v", err)
	}
	return r
}

func seedPayment(t *testing.T, db *gorm.DB, residentID uuid.UUID, amount int64, paidAt time.Time, period string) *entity.Payment {
	t.Helper()

	p, err := entity.ParseBillingPeriod(period)
	if err != nil {
		t.Fatalf("bad period %q: %v", period, err)
	}
	payment := entity.NewPayment(residentID, decimal.NewFromInt(amount), paidAt, p, entity.PaymentMethodCash, "", "", "staff@example.com")
	if err := db.Create(model.PaymentFromEntity(payment)).Error; err != nil {
		t.Fatalf("failed to seed payment: %v", err)
	}
	return payment
}

func seedExpense(t *testing.T, db *gorm.DB, category string, amount int64, spentAt time.Time) *entity.Expense {
	t.Helper()

	e := entity.NewExpense(category, "", decimal.NewFromInt(amount), spentAt, "staff@example.com")
	if err := db.Create(model.ExpenseFromEntity(e)).Error; err != nil {
		t.Fatalf("failed to seed expense: %v", err)
	}
	return e
}
