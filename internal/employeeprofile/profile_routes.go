package employeeprofile

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb ...redis.Cmdable,
) {
	idempotent := func(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
		if len(rdb) > 0 && rdb[0] != nil {
			return append([]gin.HandlerFunc{middleware.Idempotency(rdb[0])}, handlers...)
		}
		return handlers
	}

	profiles := r.Group("/employee-profiles")
	{
		profiles.POST("", idempotent(middleware.RBACAuthorize(rbacService, "employee_profile", "create"), handler.CreateProfile)...)
		profiles.GET("", middleware.RBACAuthorize(rbacService, "employee_profile", "read"), handler.ListProfiles)
		profiles.GET("/:id", middleware.RBACAuthorize(rbacService, "employee_profile", "read"), handler.GetProfile)
		profiles.PATCH("/:id/contact", middleware.RBACAuthorize(rbacService, "employee_profile", "update_contact"), handler.UpdateContactInfo)
		profiles.PATCH("/:id/status", middleware.RBACAuthorize(rbacService, "employee_profile", "update_status"), handler.UpdateStatus)
	}

	changes := r.Group("/profile-change-requests")
	{
		changes.POST("", middleware.RBACAuthorize(rbacService, "change_request", "create"), handler.SubmitChangeRequest)
		changes.GET("", middleware.RBACAuthorize(rbacService, "change_request", "read"), handler.ListChangeRequests)
		changes.POST("/:id/process", middleware.RBACAuthorize(rbacService, "change_request", "process"), handler.ProcessChangeRequest)
		changes.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "change_request", "cancel"), handler.CancelChangeRequest)
	}
}
