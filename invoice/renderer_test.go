package invoice

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/econest-bedding/storefront-api/models"
)

func sampleOrder() *models.Order {
	return &models.Order{
		ID:         42,
		Name:       "Jordan Blake",
		Email:      "jordan@example.com",
		Address:    "12 Prairie Rd, Calgary, AB",
		TotalPrice: 100.00,
		Status:     models.OrderStatusConfirmed,
		CreatedAt:  time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC),
	}
}

func TestLineSubtotals(t *testing.T) {
	lines := []Line{
		{Name: "Queen Mattress", Quantity: 2, Price: 10.00},
		{Name: "Pillow", Quantity: 1, Price: 5.00},
	}

	assert.Equal(t, "$20.00", fmt.Sprintf("$%.2f", lines[0].Subtotal()))
	assert.Equal(t, "$5.00", fmt.Sprintf("$%.2f", lines[1].Subtotal()))

	// The printed total comes from the order header, not the line sum, so
	// the two may disagree and both must appear verbatim.
	order := sampleOrder()
	lineSum := lines[0].Subtotal() + lines[1].Subtotal()
	assert.Equal(t, 25.00, lineSum)
	assert.Equal(t, "CAD $100.00", fmt.Sprintf("CAD $%.2f", order.TotalPrice))
}

func TestLineDefaults(t *testing.T) {
	// Lines decoded from malformed data come through as zero values and
	// still render.
	var l Line
	assert.Equal(t, "Unnamed Product", l.DisplayName())
	assert.Equal(t, 0.0, l.Subtotal())
}

func TestLinesFromOrder(t *testing.T) {
	order := sampleOrder()
	order.Items = []models.OrderItem{
		{ProductID: 1, Quantity: 2, Price: 10, Product: &models.Product{ID: 1, Name: "Queen Mattress"}},
		{ProductID: 2, Quantity: 1, Price: 5}, // product row gone
	}

	lines := LinesFromOrder(order)
	require.Len(t, lines, 2)
	assert.Equal(t, "Queen Mattress", lines[0].DisplayName())
	assert.Equal(t, "Unnamed Product", lines[1].DisplayName())
}

func TestRenderProducesPDF(t *testing.T) {
	order := sampleOrder()
	lines := []Line{
		{Name: "Queen Mattress", Quantity: 2, Price: 10.00},
		{Name: "Pillow", Quantity: 1, Price: 5.00},
	}

	var buf bytes.Buffer
	require.NoError(t, Render(order, lines, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 500)
}

func TestRenderEmptyItems(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(sampleOrder(), nil, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestRenderManyLinesPaginates(t *testing.T) {
	lines := make([]Line, 80)
	for i := range lines {
		lines[i] = Line{Name: fmt.Sprintf("Item %d", i), Quantity: 1, Price: 1}
	}

	var single, many bytes.Buffer
	require.NoError(t, Render(sampleOrder(), lines[:1], &single))
	require.NoError(t, Render(sampleOrder(), lines, &many))

	// 80 rows cannot fit on one Letter page; the multi-page document is
	// substantially larger than the single-row one.
	assert.Greater(t, many.Len(), single.Len())
}
