package reportControllers

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/econest-bedding/storefront-api/models"
)

// Each report is an independent, stateless read; no pagination, no caching.

type monthlyRow struct {
	Month        string  `json:"month"`
	TotalRevenue float64 `json:"totalRevenue"`
	OrderCount   int64   `json:"orderCount"`
}

type topProductRow struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	TotalSold int64  `json:"totalSold"`
}

type topCustomerRow struct {
	Email       string `json:"email"`
	OrdersCount int64  `json:"ordersCount"`
}

type lowStockRow struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type recentOrderRow struct {
	ID         uint               `json:"id"`
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	TotalPrice float64            `json:"total_price"`
	Status     models.OrderStatus `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
}

// DashboardSummary returns total product count, order count and revenue sum.
func DashboardSummary(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var totalProducts, totalOrders int64
		if err := db.Model(&models.Product{}).Count(&totalProducts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch summary"})
			return
		}
		if err := db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch summary"})
			return
		}

		var totalRevenue float64
		if err := db.Model(&models.Order{}).
			Select("COALESCE(SUM(total_price), 0)").
			Scan(&totalRevenue).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch summary"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"totalProducts": totalProducts,
			"totalOrders":   totalOrders,
			"totalRevenue":  totalRevenue,
		})
	}
}

// MonthlyReport groups revenue and order counts by calendar month.
func MonthlyReport(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rows []monthlyRow
		err := db.Model(&models.Order{}).
			Select("DATE_FORMAT(created_at, '%Y-%m') AS month, SUM(total_price) AS total_revenue, COUNT(id) AS order_count").
			Group("DATE_FORMAT(created_at, '%Y-%m')").
			Order("month ASC").
			Scan(&rows).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch monthly report"})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// TopProducts ranks the five best sellers by summed quantity sold.
func TopProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rows []topProductRow
		err := db.Model(&models.OrderItem{}).
			Select("order_items.product_id, products.name, SUM(order_items.quantity) AS total_sold").
			Joins("JOIN products ON products.id = order_items.product_id").
			Group("order_items.product_id, products.name").
			Order("total_sold DESC").
			Limit(5).
			Scan(&rows).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch top products"})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// TopCustomers ranks the five most frequent customers by order count.
func TopCustomers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rows []topCustomerRow
		err := db.Model(&models.Order{}).
			Select("email, COUNT(id) AS orders_count").
			Group("email").
			Order("orders_count DESC").
			Limit(5).
			Scan(&rows).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch top customers"})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// LowStockProducts returns products strictly below the threshold, scarcest
// first.
func LowStockProducts(db *gorm.DB, threshold int) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rows []lowStockRow
		err := db.Model(&models.Product{}).
			Select("id, name, quantity").
			Where("quantity < ?", threshold).
			Order("quantity ASC").
			Scan(&rows).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch low stock products"})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// RecentOrders returns the five most recent orders.
func RecentOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rows []recentOrderRow
		err := db.Model(&models.Order{}).
			Select("id, name, email, total_price, status, created_at").
			Order("created_at DESC").
			Limit(5).
			Scan(&rows).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch recent orders"})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// NewUsersThisWeek counts registrations in the last seven days.
func NewUsersThisWeek(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		oneWeekAgo := time.Now().AddDate(0, 0, -7)

		var count int64
		err := db.Model(&models.User{}).
			Where("created_at >= ?", oneWeekAgo).
			Count(&count).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch new users"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"newUsers": count})
	}
}

// FulfillmentRate reports delivered orders as a rounded percentage of all
// orders; zero orders yields zero.
func FulfillmentRate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var total, delivered int64
		if err := db.Model(&models.Order{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to calculate fulfillment rate"})
			return
		}
		if err := db.Model(&models.Order{}).
			Where("status = ?", models.OrderStatusDelivered).
			Count(&delivered).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to calculate fulfillment rate"})
			return
		}

		rate := 0
		if total > 0 {
			rate = int(math.Round(float64(delivered) / float64(total) * 100))
		}
		c.JSON(http.StatusOK, gin.H{"fulfillmentRate": rate})
	}
}

// StatusRatio reports pending vs delivered order counts.
func StatusRatio(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var pending, delivered int64
		if err := db.Model(&models.Order{}).
			Where("status = ?", models.OrderStatusPending).
			Count(&pending).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch order status counts"})
			return
		}
		if err := db.Model(&models.Order{}).
			Where("status = ?", models.OrderStatusDelivered).
			Count(&delivered).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch order status counts"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"pending": pending, "delivered": delivered})
	}
}
