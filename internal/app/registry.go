package app

import (
	"database/sql"

	"go-worklog/internal/bootstrap"
	"go-worklog/internal/credit"
	"go-worklog/internal/employee"
	"go-worklog/internal/logsheet"
	"go-worklog/internal/messaging/kafka"
	"go-worklog/internal/middleware"
	"go-worklog/internal/rbac"
	"go-worklog/internal/rbac/infra"
	"go-worklog/internal/timelog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
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
	timelogRepo := timelog.NewRepository(gormDB)
	logsheetRepo := logsheet.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	creditRepo := credit.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	auditLogger := bootstrap.NewStdoutAuditLogger()

	// --- Services ---
	timelogService := timelog.NewService(db, timelogRepo)
	logsheetService := logsheet.NewService(db, logsheetRepo, timelogRepo, outboxRepo, auditLogger)
	employeeService := employee.NewService(employeeRepo)
	creditService := credit.NewService(db, creditRepo)

	// --- Handlers ---
	timelogHandler := timelog.NewHandler(timelogService)
	logsheetHandler := logsheet.NewHandlerWithRedis(logsheetService, rdb)
	employeeHandler := employee.NewHandler(employeeService)
	creditHandler := credit.NewHandler(creditService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))
	router.Use(middleware.RateLimitByIP(rate.Limit(20), 40))

	api := router.Group("/api/v1")
	{
		timelog.RegisterRoutes(api, timelogHandler, rbacService)
		logsheet.RegisterRoutes(api, logsheetHandler, rbacService, rdb)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		credit.RegisterRoutes(api, creditHandler, rbacService)
	}

	return nil
}
