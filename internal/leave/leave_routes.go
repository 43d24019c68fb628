package leave

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	leaves := r.Group("/leaves")
	{
		leaves.POST("/requests", middleware.RBACAuthorize(rbacService, "leave", "create"), handler.CreateRequest)
		leaves.GET("/requests", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.ListRequests)
		leaves.GET("/requests/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetRequest)
		leaves.POST("/requests/:id/review", middleware.RBACAuthorize(rbacService, "leave", "review"), handler.ReviewRequest)
		leaves.POST("/requests/:id/cancel", middleware.RBACAuthorize(rbacService, "leave", "cancel"), handler.CancelRequest)

		leaves.PUT("/entitlements", middleware.RBACAuthorize(rbacService, "leave", "adjust"), handler.UpsertEntitlement)
		leaves.POST("/adjustments", middleware.RBACAuthorize(rbacService, "leave", "adjust"), handler.CreateAdjustment)
		leaves.GET("/balances/:employeeId", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetBalances)
	}
}
