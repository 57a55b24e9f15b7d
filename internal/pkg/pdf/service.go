// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/seed-marketplace/internal/config"
	"github.com/your-org/seed-marketplace/internal/domain/cart"
)

var receiptTmpl = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"money": FormatMoney,
}).Parse(receiptTemplate))

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// ReceiptData represents the data passed to the receipt template
type ReceiptData struct {
	Marketplace string
	PaidAt      string
	Receipt     *cart.Receipt
}

// GenerateReceipt generates a PDF receipt for a completed checkout
func (s *Service) GenerateReceipt(receipt *cart.Receipt) (*bytes.Buffer, error) {
	htmlContent, err := s.ReceiptHTML(receipt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	// Convert HTML to PDF
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)
	pdfg.Title.Set("Receipt " + receipt.Reference)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(htmlContent))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// ReceiptHTML renders the receipt page that GenerateReceipt converts
func (s *Service) ReceiptHTML(receipt *cart.Receipt) ([]byte, error) {
	data := ReceiptData{
		Marketplace: s.config.App.Name,
		PaidAt:      receipt.PaidAt.Format("January 2, 2006 15:04 MST"),
		Receipt:     receipt,
	}

	var buf bytes.Buffer
	if err := receiptTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatMoney renders minor units as ₹1,234.50
func FormatMoney(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	whole := fmt.Sprintf("%d", amount/100)
	for i := len(whole) - 3; i > 0; i -= 3 {
		whole = whole[:i] + "," + whole[i:]
	}
	return fmt.Sprintf("%s₹%s.%02d", sign, whole, amount%100)
}

const receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.Receipt.Reference}}</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            color: #333;
        }
        .header {
            margin-bottom: 30px;
            border-bottom: 2px solid #eee;
            padding-bottom: 20px;
        }
        .receipt-title {
            font-size: 28px;
            font-weight: bold;
            color: #15803d;
            margin-bottom: 10px;
        }
        .items-table {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 30px;
        }
        .items-table th,
        .items-table td {
            border: 1px solid #ddd;
            padding: 12px 8px;
            text-align: left;
        }
        .items-table th {
            background-color: #f8f9fa;
        }
        .items-table .num {
            text-align: right;
            width: 100px;
        }
        .total-row {
            font-size: 18px;
            font-weight: bold;
            text-align: right;
        }
        .status-paid {
            background-color: #dcfce7;
            color: #166534;
            padding: 4px 8px;
            border-radius: 4px;
            font-size: 12px;
            font-weight: bold;
            text-transform: uppercase;
        }
        .footer {
            margin-top: 50px;
            padding-top: 20px;
            border-top: 1px solid #eee;
            text-align: center;
            color: #666;
            font-size: 12px;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.Marketplace}}</h1>
        <div class="receipt-title">RECEIPT</div>
        <p><strong>Reference:</strong> {{.Receipt.Reference}}</p>
        <p><strong>Paid:</strong> {{.PaidAt}} <span class="status-paid">paid</span></p>
        <p><strong>Buyer:</strong> {{.Receipt.Buyer}} ({{.Receipt.Email}})</p>
        <p><strong>Currency:</strong> {{.Receipt.Currency}}</p>
    </div>

    <table class="items-table">
        <thead>
            <tr>
                <th>Seed</th>
                <th>Quality</th>
                <th>Farmer</th>
                <th class="num">Qty</th>
                <th class="num">Price</th>
                <th class="num">Subtotal</th>
            </tr>
        </thead>
        <tbody>
            {{range .Receipt.Summary.Lines}}
            <tr>
                <td><strong>{{.Item.Name}}</strong></td>
                <td>{{.Item.Quality}}</td>
                <td>{{.Item.Farmer}}</td>
                <td class="num">{{.Quantity}}</td>
                <td class="num">{{money .Item.Price}}</td>
                <td class="num">{{money .Subtotal}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <p class="total-row">Total: {{money .Receipt.Summary.Total}}</p>

    <div class="footer">
        <p>Thank you for your purchase!</p>
    </div>
</body>
</html>
`
