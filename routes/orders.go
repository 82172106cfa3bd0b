package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/econest-bedding/storefront-api/controllers/order"
)

func SetupOrderRoutes(api *gin.RouterGroup, d Deps) {
	orders := api.Group("/orders")
	{
		orders.POST("", orderControllers.PlaceOrderHandler(d.DB, d.Feed, d.Log))
		orders.GET("", orderControllers.GetOrdersHandler(d.DB))

		// websocket endpoint for real-time order updates
		orders.GET("/ws", d.Feed.Handler())

		orders.GET("/:id", orderControllers.GetOrderHandler(d.DB))
		orders.PATCH("/:id/status", orderControllers.UpdateOrderStatusHandler(d.DB, d.Outbox, d.Relay, d.Log))
		orders.GET("/:id/invoice", orderControllers.DownloadInvoiceHandler(d.DB, d.Invoices, d.Log))
	}
}
