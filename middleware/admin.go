package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/IvanTurizo/trigo-pan-expres/models"
)

// RequireAdmin guards the dashboard routes. The JWT only identifies the
// caller; the approved flag is re-read from the database on every request
// so a cached or stale token cannot outlive a revoked account.
func RequireAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseToken(c)
		if !ok {
			return
		}

		email, _ := claims["email"].(string)
		if email == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin token"})
			c.Abort()
			return
		}

		var admin models.Admin
		err := db.Where("email = ? AND approved = ?", email, true).First(&admin).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusForbidden, gin.H{"error": "Admin access revoked or not approved"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify admin"})
			}
			c.Abort()
			return
		}

		c.Set("admin_email", admin.Email)
		c.Next()
	}
}
