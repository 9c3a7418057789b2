package leave

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	leaves := r.Group("/leave-requests")
	{
		leaves.GET("", handler.GetAll)
		leaves.GET("/filter", handler.Filter)
		leaves.GET("/report", handler.Report)
		leaves.GET("/:id", handler.GetById)
		leaves.POST("", handler.Create)
		leaves.PUT("/:id", handler.Update)
		leaves.DELETE("/:id", handler.Delete)
		leaves.POST("/:id/approve", handler.Approve)
	}
}
