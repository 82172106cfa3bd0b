package invoice

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/econest-bedding/storefront-api/models"
)

// Company identity printed in the "From" block and the header band.
const (
	companyName    = "Econest Bedding Inc."
	companyAddress = "1935 30 Ave NE, Unit 7, Calgary, AB, Canada"
	companyPhone   = "Phone: +1 825-883-0015"
	companyEmail   = "Email: Albertamattress@gmail.com"
)

// Line is one renderable invoice row. Values decoded from an order line that
// never had a quantity or price come through as zero, and a missing product
// name falls back to a placeholder, so rendering never fails on bad data.
type Line struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Subtotal is quantity times unit price for this row only. The invoice total
// is taken from the order header and may legitimately disagree with the sum
// of row subtotals.
func (l Line) Subtotal() float64 {
	return float64(l.Quantity) * l.Price
}

func (l Line) DisplayName() string {
	if l.Name == "" {
		return "Unnamed Product"
	}
	return l.Name
}

// LinesFromOrder flattens an order's items (with products preloaded) into
// renderable rows.
func LinesFromOrder(order *models.Order) []Line {
	lines := make([]Line, 0, len(order.Items))
	for _, item := range order.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		lines = append(lines, Line{Name: name, Quantity: item.Quantity, Price: item.Price})
	}
	return lines
}

// Column x-positions and page metrics, in points (Letter, 612x792).
const (
	colDescX    = 50.0
	colQtyX     = 280.0
	colPriceX   = 350.0
	colSubX     = 450.0
	tableRightX = 550.0
	bandHeight  = 120.0
	breakMargin = 120.0
	rowHeight   = 18.0
)

// Render writes the invoice PDF for the given order and rows. Pure with
// respect to its inputs: no database access, no file paths.
func Render(order *models.Order, lines []Line, w io.Writer) error {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()

	// Header band
	pdf.SetFillColor(0, 51, 102)
	pdf.Rect(0, 0, pageW, bandHeight, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 26)
	pdf.Text(colDescX, 60, "INVOICE")

	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(pageW-150, 52, fmt.Sprintf("Order #: %d", order.ID))

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetXY(0, 80)
	pdf.CellFormat(pageW, 22, companyName, "", 0, "C", false, 0, "")

	// Bill To / From blocks, side by side
	pdf.SetTextColor(0, 0, 0)
	billY := bandHeight + 30
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(colDescX, billY, "Bill To:")
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(colDescX, billY+18, "Name: "+orDefault(order.Name))
	pdf.Text(colDescX, billY+34, "Email: "+orDefault(order.Email))
	pdf.Text(colDescX, billY+50, "Address: "+orDefault(order.Address))

	fromX := pageW/2 + 30
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(fromX, billY, "From:")
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(fromX, billY+18, companyName)
	pdf.Text(fromX, billY+34, companyAddress)
	pdf.Text(fromX, billY+50, companyPhone)
	pdf.Text(fromX, billY+66, companyEmail)

	// Centered order date
	dateY := billY + 100
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetXY(0, dateY)
	dateStr := "N/A"
	if !order.CreatedAt.IsZero() {
		dateStr = order.CreatedAt.Format("1/2/2006")
	}
	pdf.CellFormat(pageW, 14, "Order Date: "+dateStr, "", 0, "C", false, 0, "")

	y := dateY + 44
	y = drawTableHeader(pdf, y)

	pdf.SetFont("Helvetica", "", 11)
	if len(lines) > 0 {
		for _, line := range lines {
			if y > pageH-breakMargin {
				pdf.AddPage()
				pdf.SetTextColor(0, 0, 0)
				y = drawTableHeader(pdf, 60)
				pdf.SetFont("Helvetica", "", 11)
			}
			pdf.Text(colDescX, y, line.DisplayName())
			pdf.Text(colQtyX, y, fmt.Sprintf("%d", line.Quantity))
			pdf.Text(colPriceX, y, fmt.Sprintf("$%.2f", line.Price))
			pdf.Text(colSubX, y, fmt.Sprintf("$%.2f", line.Subtotal()))
			y += rowHeight
		}
	} else {
		pdf.SetFont("Helvetica", "", 12)
		pdf.SetXY(0, y)
		pdf.CellFormat(pageW, 14, "No items found for this order", "", 0, "C", false, 0, "")
		y += rowHeight * 2
	}

	// Total line, taken from the order header verbatim
	y += rowHeight
	pdf.SetDrawColor(0, 0, 0)
	pdf.Line(colDescX, y, tableRightX, y)
	y += rowHeight + 6
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(0, y)
	pdf.CellFormat(pageW-62, 16, fmt.Sprintf("Total Amount: CAD $%.2f", order.TotalPrice), "", 0, "R", false, 0, "")

	// Thank-you banner
	y += 70
	pdf.SetTextColor(0, 51, 102)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(0, y)
	pdf.CellFormat(pageW, 16, "Thank You For Your Business!", "", 0, "C", false, 0, "")

	return pdf.Output(w)
}

// drawTableHeader prints the bold column header and its underline, returning
// the y cursor for the first body row. Redrawn after every page break.
func drawTableHeader(pdf *gofpdf.Fpdf, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(colDescX, y, "Description")
	pdf.Text(colQtyX, y, "Qty")
	pdf.Text(colPriceX, y, "Price")
	pdf.Text(colSubX, y, "Subtotal")
	pdf.SetDrawColor(0, 0, 0)
	pdf.Line(colDescX, y+6, tableRightX, y+6)
	return y + rowHeight + 6
}

func orDefault(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
