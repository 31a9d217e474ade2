package credit

import (
	"go-worklog/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	credits := r.Group("/credits")
	credits.Use(middleware.AuthMiddleware())
	{
		credits.GET("", middleware.RBACAuthorize(rbacService, "credit", "read"), h.GetMyBalance)
		credits.GET("/employees/:employee_id", middleware.RBACAuthorize(rbacService, "credit", "read-all"), h.GetBalance)
	}
}
