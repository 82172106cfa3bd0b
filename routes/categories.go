package routes

import (
	"github.com/gin-gonic/gin"

	categoryController "github.com/econest-bedding/storefront-api/controllers/category"
)

func SetupCategoryRoutes(api *gin.RouterGroup, d Deps) {
	categories := api.Group("/categories")
	{
		categories.GET("", categoryController.GetAllCategories(d.DB))
		categories.POST("", categoryController.CreateCategory(d.DB, d.Cfg.Store.UploadDir))
		categories.PUT("/:id", categoryController.UpdateCategory(d.DB, d.Cfg.Store.UploadDir))
		categories.DELETE("/:id", categoryController.DeleteCategory(d.DB))
	}
}
