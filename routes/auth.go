package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/IvanTurizo/trigo-pan-expres/auth"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		// Anonymous shopper session (keys the in-memory cart)
		authGroup.POST("/session", auth.CreateSession())

		// Admin dashboard accounts
		authGroup.POST("/admin/register", auth.RegisterAdmin(db))
		authGroup.POST("/admin/login", auth.AdminLogin(db))
	}
}
