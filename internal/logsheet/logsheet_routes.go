package logsheet

import (
	"go-worklog/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService, rdb *redis.Client) {
	logsheets := r.Group("/logsheets")
	logsheets.Use(middleware.AuthMiddleware())
	{
		logsheets.POST("",
			middleware.RBACAuthorize(rbacService, "logsheet", "create"),
			middleware.Idempotency(rdb),
			h.Submit,
		)
		logsheets.GET("/today", middleware.RBACAuthorize(rbacService, "logsheet", "read"), h.GetSubmissionStatus)
		logsheets.GET("/pending", middleware.RBACAuthorize(rbacService, "logsheet", "read-all"), h.ListPending)
		logsheets.GET("/:id", middleware.RBACAuthorize(rbacService, "logsheet", "read"), h.GetByID)
		logsheets.POST("/:id/decision",
			middleware.RBACAuthorize(rbacService, "logsheet", "decide"),
			middleware.Idempotency(rdb),
			h.Decide,
		)
	}
}
