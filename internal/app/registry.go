package app

import (
	"database/sql"

	"github.com/uratMeds/LMS-API/internal/employee"
	"github.com/uratMeds/LMS-API/internal/leave"
	"github.com/uratMeds/LMS-API/internal/messaging/kafka"
	"github.com/uratMeds/LMS-API/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- Services ---
	employeeService := employee.NewService(db, employeeRepo)
	leaveService := leave.NewService(db, leaveRepo, employeeRepo, outboxRepo)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	leaveHandler := leave.NewHandler(leaveService)
	if rdb != nil {
		leaveHandler = leave.NewHandlerWithRedis(leaveService, rdb)
	}

	// --- Routes ---
	api := router.Group("/api/v1")
	api.Use(
		middleware.RequestID(),
		middleware.RateLimitByIP(rate.Limit(50), 100),
	)
	{
		employee.RegisterRoutes(api, employeeHandler)
		leave.RegisterRoutes(api, leaveHandler)
	}

	return nil
}
