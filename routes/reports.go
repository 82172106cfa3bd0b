package routes

import (
	"github.com/gin-gonic/gin"

	reportControllers "github.com/econest-bedding/storefront-api/controllers/report"
)

func SetupReportRoutes(api *gin.RouterGroup, d Deps) {
	threshold := d.Cfg.Reports.LowStockThreshold

	reports := api.Group("/reports")
	{
		reports.GET("/summary", reportControllers.DashboardSummary(d.DB))
		reports.GET("/monthly", reportControllers.MonthlyReport(d.DB))
		reports.GET("/top-products", reportControllers.TopProducts(d.DB))
		reports.GET("/top-customers", reportControllers.TopCustomers(d.DB))
		reports.GET("/low-stock", reportControllers.LowStockProducts(d.DB, threshold))
		reports.GET("/recent-orders", reportControllers.RecentOrders(d.DB))
		reports.GET("/new-users-week", reportControllers.NewUsersThisWeek(d.DB))
		reports.GET("/fulfillment-rate", reportControllers.FulfillmentRate(d.DB))
		reports.GET("/status-ratio", reportControllers.StatusRatio(d.DB))
	}
}
