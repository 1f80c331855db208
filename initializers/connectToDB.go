package initializers

import (
	"fmt"
	"log"
	"time"

	"github.com/Kariqs/justdrops-api/store"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dialector(cfg DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "mysql":
		return mysql.Open(cfg.DSN), nil
	case "postgres":
		return postgres.Open(cfg.DSN), nil
	case "sqlite":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = "justdrops.db"
		}
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("no SQL dialect for driver %q", cfg.Driver)
	}
}

// ConnectToDB opens the configured backend. DB_DRIVER=memory needs no DSN
// and keeps everything in process.
func ConnectToDB(cfg DatabaseConfig, production bool) (store.Storage, error) {
	if cfg.Driver == "memory" {
		log.Println("Using in-memory store; data is lost on restart.")
		return store.NewMemoryStore(), nil
	}

	dial, err := dialector(cfg)
	if err != nil {
		return nil, err
	}
	logLevel := logger.Warn
	if production {
		logLevel = logger.Error
	}
	db, err := gorm.Open(dial, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := SyncDatabase(db); err != nil {
		return nil, err
	}
	log.Printf("Connected to %s database.", cfg.Driver)
	return store.NewGormStore(db), nil
}
