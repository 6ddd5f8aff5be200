package auth

import (
	"github.com/AleBonatti/timetjek.test/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	// Login throttled to 5 attempts per minute per IP.
	r.POST("/login", middleware.RateLimitByIP(rate.Limit(5.0/60.0), 5), h.Login)
	r.POST("/refresh", h.Refresh)
	r.POST("/logout", middleware.AuthMiddleware(), h.Logout)

	user := r.Group("/user")
	user.Use(middleware.AuthMiddleware())
	{
		user.GET("", h.Me)
		user.PUT("/password", h.UpdatePassword)
		user.PUT("/profile", h.UpdateProfile)
	}
}
