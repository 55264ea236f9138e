package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/IvanTurizo/trigo-pan-expres/cart"
	orderControllers "github.com/IvanTurizo/trigo-pan-expres/controllers/order"
)

// SetupRoutes is the single entry-point that wires up Auth, Store, and
// Admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, carts *cart.Store, submitter *orderControllers.Submitter) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Storefront routes (session-token protected where state is involved)
	SetupStoreRoutes(r, db, carts, submitter)

	// Admin dashboard routes (JWT + per-request role check)
	SetupAdminRoutes(r, db)
}
