package recruitment

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

	recruitment := r.Group("/recruitment")
	{
		recruitment.POST("/applications", idempotent(middleware.RBACAuthorize(rbacService, "application", "create"), handler.CreateApplication)...)
		recruitment.GET("/applications", middleware.RBACAuthorize(rbacService, "application", "read"), handler.ListApplications)
		recruitment.GET("/applications/:id", middleware.RBACAuthorize(rbacService, "application", "read"), handler.GetApplication)
		recruitment.PATCH("/applications/:id/status", middleware.RBACAuthorize(rbacService, "application", "update"), handler.UpdateApplicationStatus)

		recruitment.POST("/onboardings", middleware.RBACAuthorize(rbacService, "onboarding", "create"), handler.CreateOnboarding)
		recruitment.GET("/onboardings/employee/:employeeId", middleware.RBACAuthorize(rbacService, "onboarding", "read"), handler.GetOnboarding)
		recruitment.PATCH("/onboardings/:id/tasks/:taskId", middleware.RBACAuthorize(rbacService, "onboarding", "update"), handler.UpdateTask)
	}
}
