// database/bootstrap.go
package database

import (
	"fmt"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"agrimitra/entities"
)

// Models lists every table the service owns, in migration order.
var Models = []any{
	&entities.User{},
	&entities.Crop{},
	&entities.Order{},
	&entities.Equipment{},
	&entities.Rental{},
	&entities.MarketPrice{},
}

// OpenSQLite opens the database at path and migrates the schema. The
// returned handle is meant to be injected into the repositories; nothing in
// the service keeps a package-level connection.
func OpenSQLite(path string, log zerolog.Logger) (*gorm.DB, error) {
	gl := gormlogger.New(&log, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
	return open(path, gl)
}

func open(path string, gl gormlogger.Interface) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn(path)), &gorm.Config{
		Logger:         gl,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql handle: %w", err)
	}
	// sqlite allows one writer; a single connection keeps transactions serialized.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(Models...); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	if err := backfillKeys(db); err != nil {
		return nil, fmt.Errorf("backfill keys: %w", err)
	}
	return db, nil
}

// backfillKeys folds the match keys of rows written before the key columns
// existed. Saving runs the models' BeforeSave hooks.
func backfillKeys(db *gorm.DB) error {
	var prices []entities.MarketPrice
	if err := db.Where("crop_key = '' OR region_key = ''").Find(&prices).Error; err != nil {
		return err
	}
	for i := range prices {
		if err := db.Save(&prices[i]).Error; err != nil {
			return err
		}
	}
	var crops []entities.Crop
	if err := db.Where("name_key = ''").Find(&crops).Error; err != nil {
		return err
	}
	for i := range crops {
		if err := db.Save(&crops[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
