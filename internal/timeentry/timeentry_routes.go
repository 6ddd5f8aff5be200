package timeentry

import (
	"github.com/AleBonatti/timetjek.test/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rdb *redis.Client) {
	entries := r.Group("/time-entries")
	entries.Use(middleware.AuthMiddleware())
	{
		entries.GET("/today", h.Today)
		entries.GET("/current-week", h.CurrentWeek)
		entries.GET("/current-month", h.CurrentMonth)
		entries.GET("/date-range", h.DateRange)
		entries.POST("/clock-in", middleware.Idempotency(rdb), h.ClockIn)
		entries.POST("/clock-out", middleware.Idempotency(rdb), h.ClockOut)
		entries.PUT("/:id", h.Update)
		entries.DELETE("/:id", h.Delete)
	}
}
