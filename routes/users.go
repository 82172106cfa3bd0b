package routes

import (
	"github.com/gin-gonic/gin"

	userControllers "github.com/econest-bedding/storefront-api/controllers/user"
)

func SetupUserRoutes(api *gin.RouterGroup, d Deps) {
	users := api.Group("/users")
	{
		users.POST("/register", userControllers.Register(d.DB))
		users.POST("/login", userControllers.Login(d.DB))
	}
}
