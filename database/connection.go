// backend/database/connection.go
package database

import (
	"fmt"
	"time"

	"github.com/gewnthar/tripcover/backend/config"
	_ "github.com/go-sql-driver/mysql" // MariaDB/MySQL driver
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// DB is only opened when the plan catalog is read from MySQL.
var DB *sqlx.DB

// DSN builds the go-sql-driver DSN: username:password@protocol(address)/dbname?param=value
func DSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
	)
}

// InitDB initializes the database connection pool.
func InitDB(cfg config.DatabaseConfig) error {
	var err error
	DB, err = sqlx.Open("mysql", DSN(cfg))
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	// The catalog is read once at startup; a small pool is enough.
	DB.SetMaxOpenConns(4)
	DB.SetMaxIdleConns(2)
	DB.SetConnMaxLifetime(5 * time.Minute)

	if err = DB.Ping(); err != nil {
		DB.Close()
		DB = nil
		return fmt.Errorf("failed to ping database: %w", err)
	}

	zap.L().Info("Connected to catalog database", zap.String("host", cfg.Host), zap.String("db", cfg.DBName))
	return nil
}

// CloseDB closes the database connection pool.
func CloseDB() {
	if DB != nil {
		DB.Close()
		DB = nil
		zap.L().Info("Database connection closed")
	}
}
