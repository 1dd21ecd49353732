package mock

import (
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbOnce sync.Once
var db *Db

// Db is a shared in-memory SQLite database for the feature suite.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
	// order is the migration order; clearing walks it backwards.
	order []string
}

// NewDb opens the database once and migrates models in the given order.
func NewDb(name string, models ...any) *Db {
	dbOnce.Do(func() {
		db = open(name, models)
	})
	return db
}

func open(name string, models []any) *Db {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	sqlDB, err := conn.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	d := &Db{DbConn: conn, models: make(map[string]any, len(models))}
	for _, m := range models {
		stmt := &gorm.Statement{DB: conn}
		if err := stmt.Parse(m); err != nil {
			panic(fmt.Sprintf("failed to parse model %T: %s", m, err))
		}
		d.models[stmt.Schema.Table] = m
		d.order = append(d.order, stmt.Schema.Table)
	}

	if err := conn.AutoMigrate(models...); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err))
	}

	return d
}

// ClearDB deletes every row, children first.
func (d *Db) ClearDB() error {
	for i := len(d.order) - 1; i >= 0; i-- {
		if err := d.DbConn.Exec("DELETE FROM " + d.order[i]).Error; err != nil {
			return fmt.Errorf("clear %s: %w", d.order[i], err)
		}
	}
	return nil
}

// GetModel returns the model registered for table.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
