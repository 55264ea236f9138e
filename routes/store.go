package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/IvanTurizo/trigo-pan-expres/cart"
	cartControllers "github.com/IvanTurizo/trigo-pan-expres/controllers/cart"
	orderControllers "github.com/IvanTurizo/trigo-pan-expres/controllers/order"
	productControllers "github.com/IvanTurizo/trigo-pan-expres/controllers/product"
	"github.com/IvanTurizo/trigo-pan-expres/middleware"
)

// SetupStoreRoutes registers the public storefront: catalog browsing plus
// the session cart and checkout.
func SetupStoreRoutes(r *gin.Engine, db *gorm.DB, carts *cart.Store, submitter *orderControllers.Submitter) {
	store := r.Group("/store")
	{
		// Catalog is public; hidden products are filtered out
		store.GET("/products", productControllers.GetProducts(db, true))
		store.GET("/products/:id", productControllers.GetProductByID(db, true))

		// Cart and checkout need a shopper session
		session := store.Group("")
		session.Use(middleware.ValidateSession)
		{
			cartGroup := session.Group("/cart")
			{
				cartGroup.GET("", cartControllers.GetCart(carts))
				cartGroup.POST("/items", cartControllers.AddCartItem(db, carts))
				cartGroup.PUT("/items/:product_id", cartControllers.UpdateCartItem(carts))
				cartGroup.DELETE("/items/:product_id", cartControllers.DeleteCartItem(carts))
				cartGroup.DELETE("", cartControllers.ClearCart(carts))
			}

			session.POST("/orders", orderControllers.SubmitOrderHandler(submitter))
		}
	}
}
