package timelog

import (
	"go-worklog/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	timelogs := r.Group("/timelogs")
	timelogs.Use(middleware.AuthMiddleware())
	{
		timelogs.POST("/check-in", middleware.RBACAuthorize(rbacService, "timelog", "create"), h.CheckIn)
		timelogs.POST("/break-start", middleware.RBACAuthorize(rbacService, "timelog", "create"), h.BreakStart)
		timelogs.POST("/break-end", middleware.RBACAuthorize(rbacService, "timelog", "create"), h.BreakEnd)
		timelogs.POST("/check-out", middleware.RBACAuthorize(rbacService, "timelog", "create"), h.CheckOut)
		timelogs.GET("", middleware.RBACAuthorize(rbacService, "timelog", "read"), h.GetToday)
		timelogs.GET("/status", middleware.RBACAuthorize(rbacService, "timelog", "read"), h.GetStatus)
		timelogs.GET("/employees/:employee_id/:date", middleware.RBACAuthorize(rbacService, "timelog", "read-all"), h.GetDayDetail)
	}
}
