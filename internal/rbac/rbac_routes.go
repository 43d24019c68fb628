package rbac

import "github.com/gin-gonic/gin"

func RegisterRoutes(r gin.IRouter, handler *Handler) {
	group := r.Group("/rbac")
	{
		group.GET("/me/permissions", handler.MyPermissions)
	}
}
