package budget

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
	budgets := r.Group("/budgets")
	budgets.Use(middleware.AuthMiddleware())
	{
		budgets.GET("", middleware.RBACAuthorize(rbacService, "budget", "read"), handler.GetAll)
		budgets.GET("/:id", middleware.RBACAuthorize(rbacService, "budget", "read"), handler.GetById)
		budgets.POST("/compute-all", middleware.RBACAuthorize(rbacService, "budget", "create"), handler.ComputeAll)
		budgets.POST("/:id/submit", middleware.RBACAuthorize(rbacService, "budget", "submit"), handler.SubmitForApproval)
		budgets.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "budget", "approve"), handler.Approve)
		budgets.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "budget", "approve"), handler.Reject)
		budgets.POST("/:id/release", middleware.RBACAuthorize(rbacService, "budget", "release"), handler.Release)
	}
}
