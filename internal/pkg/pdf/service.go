// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/rental-backend/internal/config"
	"github.com/your-org/rental-backend/internal/domain/transaction"
)

// Service renders rental receipts as PDF
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	if cfg.External.PDF.BinaryPath != "" {
		os.Setenv("WKHTMLTOPDF_PATH", cfg.External.PDF.BinaryPath)
	}
	return &Service{
		config: cfg,
	}
}

// GenerateReceipt renders a receipt for a completed rental transaction.
func (s *Service) GenerateReceipt(tx *transaction.TransactionResponse) (*bytes.Buffer, error) {
	data := receiptData{
		ReceiptNumber: fmt.Sprintf("RNT-%s-%05d", tx.CreatedAt.Format("20060102"), tx.ID),
		IssuedAt:      time.Now().Format("January 2, 2006"),
		Transaction:   tx,
		AppName:       s.config.App.Name,
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

func (s *Service) generateHTML(data receiptData) (string, error) {
	tmpl := template.Must(template.New("receipt").Parse(receiptTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

type receiptData struct {
	ReceiptNumber string
	IssuedAt      string
	Transaction   *transaction.TransactionResponse
	AppName       string
}

const receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.ReceiptNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
        .header { border-bottom: 2px solid #eee; padding-bottom: 20px; margin-bottom: 30px; }
        .header h1 { margin: 0; font-size: 22px; }
        .meta { color: #777; font-size: 12px; }
        table { width: 100%; border-collapse: collapse; margin-top: 20px; }
        th, td { text-align: left; padding: 8px 12px; border-bottom: 1px solid #eee; }
        th { background: #f7f7f7; font-size: 12px; text-transform: uppercase; color: #555; }
        .status { font-weight: bold; text-transform: capitalize; }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.AppName}} — Rental Receipt</h1>
        <div class="meta">Receipt {{.ReceiptNumber}} · issued {{.IssuedAt}}</div>
    </div>
    <table>
        <tr><th>Item</th><td>{{.Transaction.ProductTitle}}</td></tr>
        <tr><th>Owner</th><td>{{.Transaction.OwnerName}}</td></tr>
        <tr><th>Renter</th><td>{{.Transaction.RenterName}}</td></tr>
        <tr><th>From</th><td>{{.Transaction.StartDate.Format "January 2, 2006 15:04"}}</td></tr>
        <tr><th>Until</th><td>{{.Transaction.EndDate.Format "January 2, 2006 15:04"}}</td></tr>
        <tr><th>Status</th><td class="status">{{.Transaction.Status}}</td></tr>
    </table>
</body>
</html>
`
