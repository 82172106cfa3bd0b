package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/econest-bedding/storefront-api/config"
	orderControllers "github.com/econest-bedding/storefront-api/controllers/order"
	"github.com/econest-bedding/storefront-api/invoice"
	"github.com/econest-bedding/storefront-api/notify"
)

// Deps bundles everything the route groups need. Built once in main.
type Deps struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Log      *zap.Logger
	Outbox   *notify.Outbox
	Relay    *notify.Relay
	Invoices *invoice.Store
	Feed     *orderControllers.Feed
}

// Setup wires every route group under the /api prefix.
func Setup(r *gin.Engine, d Deps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "time": time.Now()})
	})

	api := r.Group("/api")
	{
		SetupUserRoutes(api, d)
		SetupProductRoutes(api, d)
		SetupCategoryRoutes(api, d)
		SetupCartRoutes(api, d)
		SetupOrderRoutes(api, d)
		SetupReportRoutes(api, d)
		SetupAdminRoutes(api, d)
	}
}
