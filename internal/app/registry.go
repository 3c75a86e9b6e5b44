package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"go-payroll/internal/attendance"
	"go-payroll/internal/budget"
	"go-payroll/internal/employee"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payroll"
	"go-payroll/internal/rbac"
	"go-payroll/internal/shared/counter"
	"go-payroll/internal/statutory"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	budgetRepo := budget.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Services ---
	attendanceService := attendance.NewService(db, attendanceRepo)
	employeeService := employee.NewService(db, employeeRepo, rdb)

	engine := payroll.NewEngine(statutory.NewCalculator())
	payrollService := payroll.NewServiceWithOutbox(
		db, payrollRepo, engine, employeeService, attendanceRepo, outboxRepo)
	budgetService := budget.NewServiceWithOutbox(
		db, budgetRepo, payrollRepo, counterRepo, outboxRepo)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	budgetHandler := budget.NewHandler(budgetService)
	employeeHandler := employee.NewHandler(employeeService)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		budget.RegisterRoutes(api, budgetHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
	}

	return nil
}
