package database

import (
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stock-ahora/truestock-api/config"
)

var DB *gorm.DB

func Connect() {
	var dsn string

	// Prioritize DATABASE_URL if provided (common on managed hosts)
	if config.AppConfig.Database.URL != "" {
		log.Println("Using DATABASE_URL for connection")
		dsn = urlToDSN(config.AppConfig.Database.URL)
	} else {
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			config.AppConfig.Database.User,
			config.AppConfig.Database.Password,
			config.AppConfig.Database.Host,
			config.AppConfig.Database.Port,
			config.AppConfig.Database.Name,
		)
	}

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// Connection pooling configuration
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Database connection established successfully")
}

// urlToDSN converts a mysql:// or mariadb:// URL into the driver DSN form
// user:pass@tcp(host:port)/dbname?params.
func urlToDSN(raw string) string {
	if !strings.HasPrefix(raw, "mysql://") && !strings.HasPrefix(raw, "mariadb://") {
		return raw
	}

	trimmed := strings.TrimPrefix(strings.TrimPrefix(raw, "mysql://"), "mariadb://")
	parts := strings.SplitN(trimmed, "@", 2)
	if len(parts) != 2 {
		return raw
	}
	creds := parts[0]

	hostParts := strings.SplitN(parts[1], "/", 2)
	if len(hostParts) != 2 {
		return raw
	}
	hostPort := hostParts[0]
	dbName := hostParts[1]

	params := "?charset=utf8mb4&parseTime=True&loc=Local"
	if idx := strings.Index(dbName, "?"); idx >= 0 {
		params = dbName[idx:]
		dbName = dbName[:idx]
	}

	return fmt.Sprintf("%s@tcp(%s)/%s%s", creds, hostPort, dbName, params)
}
