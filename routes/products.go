package routes

import (
	"github.com/gin-gonic/gin"

	productcontroller "github.com/econest-bedding/storefront-api/controllers/product"
)

func SetupProductRoutes(api *gin.RouterGroup, d Deps) {
	products := api.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(d.DB))
		products.GET("/:id", productcontroller.GetProductByID(d.DB))
		products.POST("", productcontroller.CreateProduct(d.DB, d.Cfg.Store.UploadDir))
		products.PUT("/:id", productcontroller.UpdateProduct(d.DB, d.Cfg.Store.UploadDir))
		products.DELETE("/:id", productcontroller.DeleteProduct(d.DB, d.Cfg.Store.UploadDir, d.Log))
	}
}
