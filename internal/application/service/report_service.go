package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/repository"
	"github.com/xuri/excelize/v2"
)

// RegisterFilename is the download name of the invoice register export.
const RegisterFilename = "invoice-register.xlsx"

// ReportService builds spreadsheet exports over finalized invoices
type ReportService struct {
	billingRepo repository.BillingRepository
}

// NewReportService creates a new report service
func NewReportService(billingRepo repository.BillingRepository) *ReportService {
	return &ReportService{billingRepo: billingRepo}
}

var registerHeader = []interface{}{
	"Invoice No", "Finalized", "Customer", "Phone", "Vehicle No",
	"Items", "Subtotal", "GST", "CST", "Grand Total",
}

// BuildInvoiceRegister exports the finalized invoices in the period as
// an xlsx workbook, one row per invoice.
func (s *ReportService) BuildInvoiceRegister(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]byte, error) {
	sessions, err := s.billingRepo.ListLocked(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Invoices"
	f.SetSheetName("Sheet1", sheet)

	if err := f.SetSheetRow(sheet, "A1", &registerHeader); err != nil {
		return nil, fmt.Errorf("report: write header: %w", err)
	}

	for i, session := range sessions {
		totals := session.Totals()

		finalized := ""
		if session.FinalizedAt != nil {
			finalized = session.FinalizedAt.Format("2006-01-02 15:04")
		}

		row := []interface{}{
			session.InvoiceNo,
			finalized,
			session.Customer.Name,
			session.Customer.PhoneNumber,
			session.Customer.VehicleNumber,
			len(session.Lines),
			totals.Subtotal.StringFixed(2),
			totals.GSTAmount.StringFixed(2),
			totals.CSTAmount.StringFixed(2),
			totals.GrandTotal.StringFixed(2),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("report: write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("report: serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
