package invoice

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/entity"
)

func sampleInvoice() *entity.Invoice {
	return &entity.Invoice{
		Shop:        entity.DefaultShopProfile(),
		Customer:    entity.CustomerProfile{Name: "Walk-in Customer", Address: "Noida"},
		Boilerplate: entity.DefaultInvoiceBoilerplate(),
		InvoiceNo:   "INV-20240601-0001",
		Date:        "2024-06-01",
		Rows: []entity.InvoiceRow{
			{Serial: 1, Description: "MRF ZVTS 145/80 R12", Quantity: "2", Unit: "No.", UnitPrice: "3200", Amount: "6400.00"},
			{Serial: 2, Description: "Wheel alignment", Quantity: "1", Unit: "No.", UnitPrice: "500", Amount: "500.00"},
		},
		Subtotal:      "6900.00",
		GSTPercent:    "18",
		GSTAmount:     "1242.00",
		CSTPercent:    "2",
		CSTAmount:     "138.00",
		GrandTotal:    "8280.00",
		AmountInWords: "Eight Thousand Two Hundred Eighty Only",
	}
}

func TestRenderPDF(t *testing.T) {
	data, err := RenderPDF(sampleInvoice())
	require.NoError(t, err)
	require.Greater(t, len(data), 1000)
	require.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderPDFEmptyRows(t *testing.T) {
	doc := sampleInvoice()
	doc.Rows = nil

	data, err := RenderPDF(doc)
	require.NoError(t, err)
	require.Equal(t, "%PDF", string(data[:4]))
}

func TestExportFilename(t *testing.T) {
	require.Equal(t, "invoice.pdf", ExportFilename)
}
