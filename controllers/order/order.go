package orderControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/econest-bedding/storefront-api/invoice"
	"github.com/econest-bedding/storefront-api/models"
	"github.com/econest-bedding/storefront-api/notify"
)

// -------- Request Structs --------

type OrderItemInput struct {
	ProductID uint    `json:"id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Price     float64 `json:"price"`
}

type PlaceOrderRequest struct {
	UserID     *uint            `json:"user_id"`
	Name       string           `json:"name" binding:"required"`
	Email      string           `json:"email" binding:"required"`
	Address    string           `json:"address" binding:"required"`
	Items      []OrderItemInput `json:"items" binding:"required,min=1,dive"`
	TotalPrice float64          `json:"total_price" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

var errProductMissing = errors.New("order references a product that does not exist")

// -------- Core Logic --------

// PlaceOrder persists the order header, its lines, and the per-line stock
// decrements as one transaction: either every row commits or none does.
// Stock is allowed to go negative (backorders); a line naming an unknown
// product aborts the whole order.
func PlaceOrder(db *gorm.DB, req PlaceOrderRequest) (*models.Order, error) {
	order := models.Order{
		UserID:     req.UserID,
		Name:       req.Name,
		Email:      req.Email,
		Address:    req.Address,
		TotalPrice: req.TotalPrice,
		Status:     models.OrderStatusPending,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		items := make([]models.OrderItem, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, models.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		for _, item := range req.Items {
			res := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("quantity", gorm.Expr("quantity - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errProductMissing
			}
		}

		order.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus applies the durable state transition and enqueues the
// notification in one transaction, then makes a single synchronous dispatch
// attempt. The returned emailStatus reflects that attempt only; a failure
// leaves the message queued for the background dispatcher and never touches
// the already-committed status.
func UpdateOrderStatus(db *gorm.DB, outbox *notify.Outbox, orderID uint, status models.OrderStatus) (*models.Order, string, error) {
	var order models.Order
	var msg *models.OutboxMessage

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").Preload("Items.Product").First(&order, orderID).Error; err != nil {
			return err
		}
		if err := tx.Model(&order).Update("status", status).Error; err != nil {
			return err
		}
		order.Status = status

		var enqueueErr error
		msg, enqueueErr = outbox.Enqueue(tx, &order)
		return enqueueErr
	})
	if err != nil {
		return nil, "", err
	}

	emailStatus := "success"
	if err := outbox.Dispatch(msg.ID); err != nil {
		emailStatus = "failed"
	}
	return &order, emailStatus, nil
}

// -------- Handlers --------

func PlaceOrderHandler(db *gorm.DB, feed *Feed, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields or empty cart"})
			return
		}

		order, err := PlaceOrder(db, req)
		if err != nil {
			log.Error("order placement failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error while placing order"})
			return
		}

		feed.BroadcastNewOrder(order)
		c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "orderId": order.ID})
	}
}

// GetOrdersHandler lists orders newest first, optionally filtered by the
// exact customer email.
func GetOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.
			Preload("Items").
			Preload("Items.Product").
			Order("created_at DESC")
		if email := c.Query("email"); email != "" {
			query = query.Where("email = ?", email)
		}

		var orders []models.Order
		if err := query.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseOrderID(c)
		if !ok {
			return
		}

		var order models.Order
		if err := db.Preload("Items").Preload("Items.Product").First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func UpdateOrderStatusHandler(db *gorm.DB, outbox *notify.Outbox, relay *notify.Relay, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseOrderID(c)
		if !ok {
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "status is required"})
			return
		}
		status, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		order, emailStatus, err := UpdateOrderStatus(db, outbox, id, status)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		if err := relay.PublishStatusChange(order); err != nil {
			log.Warn("status event relay failed", zap.Uint("order_id", order.ID), zap.Error(err))
		}

		c.JSON(http.StatusOK, gin.H{
			"message":     "Order status updated successfully",
			"order":       order,
			"emailStatus": emailStatus,
		})
	}
}

// DownloadInvoiceHandler serves the invoice PDF for the order's current
// version, rendering it only if that version is not on disk yet.
func DownloadInvoiceHandler(db *gorm.DB, store *invoice.Store, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseOrderID(c)
		if !ok {
			return
		}

		var order models.Order
		if err := db.Preload("Items").Preload("Items.Product").First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		path, err := store.Ensure(&order)
		if err != nil {
			log.Error("invoice render failed", zap.Uint("order_id", order.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error while downloading invoice"})
			return
		}

		c.FileAttachment(path, "invoice_"+strconv.FormatUint(uint64(order.ID), 10)+".pdf")
	}
}

func parseOrderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order ID"})
		return 0, false
	}
	return uint(id), true
}
