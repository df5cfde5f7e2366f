package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/entity"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/repository"
	"github.com/tyreshoppe/shopdesk-api/pkg/apperror"
	"github.com/tyreshoppe/shopdesk-api/pkg/invoice"
	"github.com/tyreshoppe/shopdesk-api/pkg/numwords"
)

// InvoiceService composes the print-ready invoice document from a
// billing session.
type InvoiceService struct {
	billingRepo repository.BillingRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(billingRepo repository.BillingRepository) *InvoiceService {
	return &InvoiceService{billingRepo: billingRepo}
}

// BuildInvoice assembles the render model for a session. Totals are
// computed from the lines at call time, so the document can never
// disagree with the cart it came from.
func (s *InvoiceService) BuildInvoice(ctx context.Context, userID, sessionID uuid.UUID) (*entity.Invoice, error) {
	session, err := s.billingRepo.GetWithLines(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Billing session")
	}
	if session.UserID != userID {
		return nil, apperror.ErrForbidden
	}

	rows := make([]entity.InvoiceRow, 0, len(session.Lines))
	for i, line := range session.Lines {
		rows = append(rows, entity.InvoiceRow{
			Serial:      i + 1,
			Description: line.Description,
			Quantity:    line.Quantity,
			Unit:        line.Unit,
			UnitPrice:   formatPrice(line.UnitPrice),
			Amount:      line.Amount().StringFixed(2),
		})
	}

	totals := session.Totals()

	date := session.CreatedAt.Format("2006-01-02")
	if session.FinalizedAt != nil {
		date = session.FinalizedAt.Format("2006-01-02")
	}

	return &entity.Invoice{
		Shop:          session.Shop,
		Customer:      session.Customer,
		Boilerplate:   entity.DefaultInvoiceBoilerplate(),
		InvoiceNo:     session.InvoiceNo,
		Date:          date,
		Rows:          rows,
		Subtotal:      totals.Subtotal.StringFixed(2),
		GSTPercent:    session.GSTPercent,
		GSTAmount:     totals.GSTAmount.StringFixed(2),
		CSTPercent:    session.CSTPercent,
		CSTAmount:     totals.CSTAmount.StringFixed(2),
		GrandTotal:    totals.GrandTotal.StringFixed(2),
		AmountInWords: numwords.Convert(totals.GrandTotal.InexactFloat64()),
	}, nil
}

// formatPrice renders a unit price to two decimals. Text that does not
// parse as a number prints as typed; the row amount is zero anyway.
func formatPrice(raw string) string {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return raw
	}
	return price.StringFixed(2)
}

// ExportPDF renders the invoice to PDF bytes with its fixed download
// filename.
func (s *InvoiceService) ExportPDF(ctx context.Context, userID, sessionID uuid.UUID) ([]byte, string, error) {
	doc, err := s.BuildInvoice(ctx, userID, sessionID)
	if err != nil {
		return nil, "", err
	}

	data, err := invoice.RenderPDF(doc)
	if err != nil {
		return nil, "", err
	}
	return data, invoice.ExportFilename, nil
}
