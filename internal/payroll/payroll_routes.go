package payroll

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware())
	payrolls.Use(middleware.RateLimitByUser(rate.Limit(10), 20))
	{
		payrolls.GET("", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetAll)
		payrolls.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetById)
		payrolls.GET("/:id/breakdown", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetBreakdown)
		payrolls.GET("/:id/payslip", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.DownloadPayslip)
		if redisClient != nil {
			payrolls.POST(
				"",
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(rbacService, "payroll", "create"),
				handler.Create,
			)
		} else {
			payrolls.POST("", middleware.RBACAuthorize(rbacService, "payroll", "create"), handler.Create)
		}
		payrolls.PUT("/:id", middleware.RBACAuthorize(rbacService, "payroll", "update"), handler.Update)
		payrolls.POST("/:id/mark-paid", middleware.RBACAuthorize(rbacService, "payroll", "pay"), handler.MarkAsPaid)
		payrolls.POST("/mark-paid", middleware.RBACAuthorize(rbacService, "payroll", "pay"), handler.MarkMultipleAsPaid)
		payrolls.POST("/:id/release", middleware.RBACAuthorize(rbacService, "payroll", "release"), handler.Release)
		payrolls.DELETE("/:id", middleware.RBACAuthorize(rbacService, "payroll", "delete"), handler.Delete)
	}
}
