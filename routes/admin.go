package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/econest-bedding/storefront-api/controllers/order"
	productcontroller "github.com/econest-bedding/storefront-api/controllers/product"
	userControllers "github.com/econest-bedding/storefront-api/controllers/user"
	"github.com/econest-bedding/storefront-api/middleware"
)

// SetupAdminRoutes registers the back-office aliases. The API-key gate is a
// pass-through until ADMIN_API_KEY is configured.
func SetupAdminRoutes(api *gin.RouterGroup, d Deps) {
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAPIKey(d.Cfg.Admin.APIKey))
	{
		products := admin.Group("/products")
		{
			products.GET("", productcontroller.GetProducts(d.DB))
			products.POST("", productcontroller.CreateProduct(d.DB, d.Cfg.Store.UploadDir))
			products.PUT("/:id", productcontroller.UpdateProduct(d.DB, d.Cfg.Store.UploadDir))
			products.DELETE("/:id", productcontroller.DeleteProduct(d.DB, d.Cfg.Store.UploadDir, d.Log))
			products.POST("/import-excel", productcontroller.ImportProductsFromExcel(d.DB))
			products.GET("/export-excel", productcontroller.ExportProductsToExcel(d.DB))
		}

		admin.GET("/orders", orderControllers.GetOrdersHandler(d.DB))
		admin.PUT("/orders/:id", orderControllers.UpdateOrderStatusHandler(d.DB, d.Outbox, d.Relay, d.Log))

		admin.GET("/users", userControllers.GetAllUsers(d.DB))
	}
}
