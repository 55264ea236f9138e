package cartControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/IvanTurizo/trigo-pan-expres/cart"
	"github.com/IvanTurizo/trigo-pan-expres/models"
)

type AddCartItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
}

type UpdateCartItemInput struct {
	Quantity int `json:"quantity"`
}

func sessionID(c *gin.Context) (string, bool) {
	id := c.GetString("session_id")
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return id, true
}

// POST /store/cart/items
// Looks the product up so the cart line carries a snapshot of its current
// name, price and image; the cart never references the catalog live.
func AddCartItem(db *gorm.DB, store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, ok := sessionID(c)
		if !ok {
			return
		}

		var input AddCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.Where("id = ? AND is_active = ?", input.ProductID, true).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		store.AddItem(sid, cart.Item{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.ImageURL,
		})

		c.JSON(http.StatusCreated, gin.H{
			"items": store.Items(sid),
			"total": store.Total(sid),
		})
	}
}

// PUT /store/cart/items/:product_id
func UpdateCartItem(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, ok := sessionID(c)
		if !ok {
			return
		}
		productID := c.Param("product_id")

		var input UpdateCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		store.UpdateQuantity(sid, productID, input.Quantity)

		c.JSON(http.StatusOK, gin.H{
			"items": store.Items(sid),
			"total": store.Total(sid),
		})
	}
}

// DELETE /store/cart/items/:product_id
func DeleteCartItem(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, ok := sessionID(c)
		if !ok {
			return
		}

		store.RemoveItem(sid, c.Param("product_id"))

		c.JSON(http.StatusOK, gin.H{
			"items": store.Items(sid),
			"total": store.Total(sid),
		})
	}
}

// DELETE /store/cart
func ClearCart(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, ok := sessionID(c)
		if !ok {
			return
		}

		store.Clear(sid)
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// GET /store/cart
func GetCart(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, ok := sessionID(c)
		if !ok {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items": store.Items(sid),
			"total": store.Total(sid),
		})
	}
}
