package productcontroller

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

	"github.com/econest-bedding/storefront-api/models"
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

func productRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "description", "price", "quantity", "category_id", "image"}).
		AddRow(1, "Queen Mattress", "Firm", 899.0, 12, 1, "/uploads/products/1.jpg")
}

func TestGetProductsAppliesFilters(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `products` WHERE \\(name LIKE \\? OR description LIKE \\?\\) AND category_id = \\? AND price >= \\? AND price <= \\? ORDER BY price asc").
		WithArgs("%mattress%", "%mattress%", 1, 100.0, 1000.0).
		WillReturnRows(productRows())
	mock.ExpectQuery("SELECT \\* FROM `categories`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Mattresses"))

	r := gin.New()
	r.GET("/api/products", GetProducts(db))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/products?search=mattress&category=1&min_price=100&max_price=1000&sort_by=price&order=asc", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var products []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Queen Mattress", products[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// sort parameters outside the whitelist silently fall back to defaults, so
// they can never reach the ORDER BY clause.
func TestGetProductsIgnoresUnknownSortColumn(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `products` ORDER BY created_at desc").
		WillReturnRows(productRows())
	mock.ExpectQuery("SELECT \\* FROM `categories`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Mattresses"))

	r := gin.New()
	r.GET("/api/products", GetProducts(db))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/products?sort_by=price%3BDROP+TABLE+products&order=sideways", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProductsRejectsBadCategory(t *testing.T) {
	db, mock := newMockDB(t)

	r := gin.New()
	r.GET("/api/products", GetProducts(db))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products?category=furniture", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProductByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `products`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	r := gin.New()
	r.GET("/api/products/:id", GetProductByID(db))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products/9999", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
