package attendance

import (
	"github.com/gin-gonic/gin"

	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.POST("/clock-in", handler.ClockIn)
		attendances.POST("/clock-out", handler.ClockOut)
		attendances.POST("/mark", middleware.RBACAuthorize(rbacService, "attendance", "write"), handler.MarkDay)
		attendances.GET("/employee/:employeeId", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.GetByEmployee)
	}
}
