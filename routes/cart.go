package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/econest-bedding/storefront-api/controllers/cart"
)

func SetupCartRoutes(api *gin.RouterGroup, d Deps) {
	cart := api.Group("/cart")
	{
		cart.GET("/:userId", cartControllers.GetCart(d.DB))
		cart.POST("", cartControllers.AddCartItem(d.DB))
		cart.PUT("", cartControllers.SetCartQuantity(d.DB))
		cart.DELETE("/:userId", cartControllers.ClearCart(d.DB))
		cart.DELETE("/:userId/:productId", cartControllers.DeleteCartItem(d.DB))
	}
}
