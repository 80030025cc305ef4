package mock

import (
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var once sync.Once
var db *Db

// Db is the in-memory SQLite database standing in for PostgreSQL behind the ledger mirror.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
	schema string
}

// NewDb opens the shared in-memory database the ledger mirror writes to.
// models maps table names to the GORM models recreated on every ClearDB.
func NewDb(schema string, models map[string]any) *Db {
	if db == nil {
		once.Do(
			func() {
				db = open(schema, models)
			},
		)
	}

	return db
}

func open(schema string, models map[string]any) *Db {
	dbSQL, err := sql.Open("sqlite", "file:"+schema+"?mode=memory&cache=shared")
	if err != nil {
		panic(err)
	}

	// One connection keeps every statement on the same in-memory database.
	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	newDbMock := &Db{
		DbConn: dbConn,
		schema: schema,
		models: models,
	}

	if err := newDbMock.ClearDB(); err != nil {
		panic(fmt.Sprintf("failed to clear database. err: %s", err.Error()))
	}

	return newDbMock
}

// ClearDB drops and recreates every registered table.
func (d *Db) ClearDB() error {
	return d.DbConn.Transaction(func(tx *gorm.DB) error {
		for _, name := range d.tableNames() {
			model := d.models[name]
			if err := tx.Migrator().DropTable(model); err != nil {
				return fmt.Errorf("failed to drop %s: %w", name, err)
			}
			if err := tx.AutoMigrate(model); err != nil {
				return fmt.Errorf("failed to migrate %s: %w", name, err)
			}
			if !tx.Migrator().HasTable(model) {
				return fmt.Errorf("table for model %T was not created", model)
			}
		}
		return nil
	})
}

// Count returns the number of rows in table.
func (d *Db) Count(table string) (int64, error) {
	model, ok := d.GetModel(table)
	if !ok {
		return 0, fmt.Errorf("table %s is not registered", table)
	}
	var count int64
	if err := d.DbConn.Model(model).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}

func (d *Db) tableNames() []string {
	names := make([]string, 0, len(d.models))
	for name := range d.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
