package reportControllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestLowStockProductsUsesThresholdAndOrdersScarcestFirst(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT id, name, quantity FROM `products` WHERE quantity < ").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "quantity"}).
			AddRow(3, "Pillow", 1).
			AddRow(5, "Fitted Sheet", 4))

	r := gin.New()
	r.GET("/api/reports/low-stock", LowStockProducts(db, 10))

	w := get(r, "/api/reports/low-stock")
	require.Equal(t, http.StatusOK, w.Code)

	var rows []lowStockRow
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Pillow", rows[0].Name)
	assert.Equal(t, 1, rows[0].Quantity)
	assert.Equal(t, "Fitted Sheet", rows[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardSummaryEmptyStoreHasZeroRevenue(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `products`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `orders`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(total_price\\), 0\\) FROM `orders`").
		WillReturnRows(sqlmock.NewRows([]string{"total_revenue"}).AddRow(0))

	r := gin.New()
	r.GET("/api/reports/summary", DashboardSummary(db))

	w := get(r, "/api/reports/summary")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]float64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0.0, resp["totalProducts"])
	assert.Equal(t, 0.0, resp["totalOrders"])
	assert.Equal(t, 0.0, resp["totalRevenue"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFulfillmentRateRoundsToNearestPercent(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `orders`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `orders` WHERE status = ").
		WithArgs("delivered").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	r := gin.New()
	r.GET("/api/reports/fulfillment-rate", FulfillmentRate(db))

	w := get(r, "/api/reports/fulfillment-rate")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 67, resp["fulfillmentRate"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFulfillmentRateZeroOrders(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `orders`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `orders` WHERE status = ").
		WithArgs("delivered").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	r := gin.New()
	r.GET("/api/reports/fulfillment-rate", FulfillmentRate(db))

	w := get(r, "/api/reports/fulfillment-rate")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp["fulfillmentRate"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTopProductsLimitsToFive(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"product_id", "name", "total_sold"}).
		AddRow(1, "Queen Mattress", 40).
		AddRow(2, "Pillow", 25)
	mock.ExpectQuery("SELECT order_items.product_id, products.name, SUM\\(order_items.quantity\\) AS total_sold FROM `order_items` JOIN products").
		WillReturnRows(rows)

	r := gin.New()
	r.GET("/api/reports/top-products", TopProducts(db))

	w := get(r, "/api/reports/top-products")
	require.Equal(t, http.StatusOK, w.Code)

	var resp []topProductRow
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, int64(40), resp[0].TotalSold)
	assert.NoError(t, mock.ExpectationsWereMet())
}
