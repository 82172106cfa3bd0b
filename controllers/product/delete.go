package productcontroller

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/econest-bedding/storefront-api/models"
)

// DeleteProduct removes the product row and its uploaded image file, if one
// exists. Historical order lines keep their product_id. A product without an
// image deletes cleanly; a missing file on disk is not an error.
func DeleteProduct(db *gorm.DB, uploadDir string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		if err := db.Delete(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}

		if product.Image != "" {
			imagePath := filepath.Join(uploadDir, "products", filepath.Base(strings.TrimPrefix(product.Image, productPublicPath)))
			if err := os.Remove(imagePath); err != nil && !os.IsNotExist(err) {
				log.Warn("failed to delete product image", zap.String("path", imagePath), zap.Error(err))
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
