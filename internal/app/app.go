package app

import (
	"os"

	"github.com/uratMeds/LMS-API/internal/employee"
	"github.com/uratMeds/LMS-API/internal/leave"
	"github.com/uratMeds/LMS-API/internal/messaging/kafka"
	"github.com/uratMeds/LMS-API/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BuildApp connects infrastructure, migrates and seeds the schema, and
// registers all modules on the router.
func BuildApp(router *gin.Engine) error {
	gormDB, err := openDatabase()
	if err != nil {
		return err
	}

	if err := autoMigrate(gormDB); err != nil {
		return err
	}
	if err := seed(gormDB); err != nil {
		return err
	}

	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	// Redis is optional; without it the report endpoint skips caching.
	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb, err = connection.ConnectRedisWithRetry(addr, 3)
		if err != nil {
			zap.L().Warn("redis unavailable, report caching disabled", zap.Error(err))
			rdb = nil
		}
	}

	return registerModules(router, db, gormDB, rdb)
}

func openDatabase() (*gorm.DB, error) {
	if os.Getenv("DB_DRIVER") == "postgres" {
		return connection.ConnectGORMWithRetry(
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_PORT"),
			os.Getenv("DB_SSLMODE"),
			5,
		)
	}

	path := os.Getenv("SQLITE_PATH")
	if path == "" {
		path = "lms.db"
	}
	return connection.OpenSQLite(path)
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&employee.Employee{},
		&leave.LeaveRequest{},
		&kafka.OutboxEvent{},
	)
}
