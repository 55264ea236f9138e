package auth

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/IvanTurizo/trigo-pan-expres/models"
)

type adminCredentials struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
}

// POST /auth/admin/register
// The very first admin account is approved automatically so the bakery
// can bootstrap its dashboard; everyone after that waits for approval.
func RegisterAdmin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req adminCredentials
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		var admin models.Admin
		err = db.Transaction(func(tx *gorm.DB) error {
			var existing int64
			if err := tx.Model(&models.Admin{}).Where("approved = ?", true).Count(&existing).Error; err != nil {
				return err
			}

			admin = models.Admin{
				Email:        req.Email,
				Name:         strings.TrimSpace(req.Name),
				PasswordHash: string(hash),
				Approved:     existing == 0,
			}
			return tx.Create(&admin).Error
		})
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Could not register admin"})
			return
		}

		status := "pending approval"
		if admin.Approved {
			status = "approved"
		}
		c.JSON(http.StatusCreated, gin.H{"email": admin.Email, "status": status})
	}
}

// POST /auth/admin/login
func AdminLogin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req adminCredentials
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		var admin models.Admin
		if err := db.Where("email = ?", req.Email).First(&admin).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		if !admin.Approved {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account pending approval"})
			return
		}

		token, err := issueAdminToken(admin.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"admin": admin,
		})
	}
}

// The token identifies the admin; it never carries an authorization
// decision. Approval is re-checked against the database on every admin
// request, so revoking an account takes effect immediately.
func issueAdminToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"role":  "admin",
		"exp":   time.Now().Add(12 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
