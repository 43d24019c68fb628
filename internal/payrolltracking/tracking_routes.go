package payrolltracking

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	tracking := r.Group("/payroll-tracking")
	{
		tracking.POST("/claims", middleware.RBACAuthorize(rbacService, "claim", "create"), handler.CreateClaim)
		tracking.GET("/claims", middleware.RBACAuthorize(rbacService, "claim", "read"), handler.ListClaims)
		tracking.GET("/claims/:id", middleware.RBACAuthorize(rbacService, "claim", "read"), handler.GetClaim)
		tracking.POST("/claims/:id/review", middleware.RBACAuthorize(rbacService, "claim", "review"), handler.ReviewClaim)
		tracking.POST("/claims/:id/confirm", middleware.RBACAuthorize(rbacService, "claim", "confirm"), handler.ConfirmClaim)
		tracking.POST("/claims/:id/refund", middleware.RBACAuthorize(rbacService, "refund", "create"), handler.CreateClaimRefund)

		tracking.POST("/disputes", middleware.RBACAuthorize(rbacService, "dispute", "create"), handler.CreateDispute)
		tracking.GET("/disputes", middleware.RBACAuthorize(rbacService, "dispute", "read"), handler.ListDisputes)
		tracking.GET("/disputes/:id", middleware.RBACAuthorize(rbacService, "dispute", "read"), handler.GetDispute)
		tracking.POST("/disputes/:id/review", middleware.RBACAuthorize(rbacService, "dispute", "review"), handler.ReviewDispute)
		tracking.POST("/disputes/:id/confirm", middleware.RBACAuthorize(rbacService, "dispute", "confirm"), handler.ConfirmDispute)
		tracking.POST("/disputes/:id/refund", middleware.RBACAuthorize(rbacService, "refund", "create"), handler.CreateDisputeRefund)

		tracking.GET("/refunds", middleware.RBACAuthorize(rbacService, "refund", "read"), handler.ListRefunds)
		tracking.POST("/refunds/:id/mark-paid", middleware.RBACAuthorize(rbacService, "refund", "pay"), handler.MarkRefundPaid)
	}
}
