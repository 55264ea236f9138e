package productcontroller

import (
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/IvanTurizo/trigo-pan-expres/models"
)

type ProductInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    string   `json:"image_url"`
	Category    string   `json:"category"`
	IsActive    *bool    `json:"is_active"`
}

// validateProductInput applies the dashboard form rules and returns the
// cleaned-up field values. First violated rule wins.
func validateProductInput(input *ProductInput) (models.Category, string) {
	input.Name = strings.TrimSpace(input.Name)
	if utf8.RuneCountInString(input.Name) < 2 {
		return "", "El nombre debe tener al menos 2 caracteres"
	}
	if utf8.RuneCountInString(input.Name) > 100 {
		return "", "El nombre debe tener máximo 100 caracteres"
	}

	if input.Price == nil || *input.Price < 0 {
		return "", "El precio debe ser mayor o igual a 0"
	}

	input.ImageURL = strings.TrimSpace(input.ImageURL)
	if utf8.RuneCountInString(input.ImageURL) > 500 {
		return "", "URL de imagen inválida"
	}
	if u, err := url.ParseRequestURI(input.ImageURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", "URL de imagen inválida"
	}

	category, ok := models.NormalizeCategory(input.Category)
	if !ok {
		return "", "Selecciona una categoría"
	}

	input.Description = strings.TrimSpace(input.Description)
	if utf8.RuneCountInString(input.Description) > 500 {
		return "", "La descripción debe tener máximo 500 caracteres"
	}

	return category, ""
}

// CreateProduct creates a new catalog product.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		category, msg := validateProductInput(&input)
		if msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}

		product := models.Product{
			Name:        input.Name,
			Description: input.Description,
			Price:       *input.Price,
			ImageURL:    input.ImageURL,
			Category:    category,
			IsActive:    true,
		}
		if input.IsActive != nil {
			product.IsActive = *input.IsActive
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
