package employee

import (
	"go-worklog/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("/me", middleware.RBACAuthorize(rbacService, "employee", "read"), h.GetMe)
	}
}
