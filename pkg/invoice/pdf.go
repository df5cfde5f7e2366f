// Package invoice renders the fixed-layout TAX INVOICE document to a
// single A4 PDF page for download and printing.
package invoice

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/entity"
)

// ExportFilename is the fixed download filename for the exported artifact.
const ExportFilename = "invoice.pdf"

const (
	pageWidth  = 210.0
	marginX    = 10.0
	contentW   = pageWidth - 2*marginX
	lineHeight = 4.5
)

// RenderPDF lays the invoice out on one A4 page and returns the PDF
// bytes. The document reflects exactly the totals passed in; nothing is
// recomputed here.
func RenderPDF(doc *entity.Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginX, 10, marginX)
	pdf.SetAutoPageBreak(false, 10)
	pdf.AddPage()

	renderHeader(pdf, doc)
	renderBoilerplate(pdf, doc)
	renderParties(pdf, doc)
	renderItemsTable(pdf, doc)
	renderSummary(pdf, doc)
	renderFooter(pdf, doc)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("invoice: render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func renderHeader(pdf *gofpdf.Fpdf, doc *entity.Invoice) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW-30, lineHeight, "GSTIN : "+doc.Shop.GSTIN, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW-30, lineHeight,
		"(Input Tax Credit is available to a taxable person against this copy)", "", 1, "L", false, 0, "")

	// Payment QR in the top-right corner.
	if png, err := qrcode.Encode(paymentReference(doc), qrcode.Medium, 192); err == nil {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("header-qr", opts, bytes.NewReader(png))
		pdf.ImageOptions("header-qr", pageWidth-marginX-24, 10, 24, 24, false, opts, 0, "")
	}

	pdf.SetFont("Helvetica", "BU", 13)
	pdf.CellFormat(contentW, 7, "TAX INVOICE", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW-30, lineHeight, doc.Shop.Name, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW-30, lineHeight, doc.Shop.Address, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW-30, lineHeight,
		fmt.Sprintf("PAN : %s  Tel. : %s", doc.Shop.PAN, doc.Shop.Phone), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW-30, lineHeight, "Email : "+doc.Shop.Email, "", 1, "L", false, 0, "")
	pdf.Ln(2)
	hairline(pdf)
}

func renderBoilerplate(pdf *gofpdf.Fpdf, doc *entity.Invoice) {
	b := doc.Boilerplate
	left := []string{
		"IRN : " + b.IRN,
		"Ack. No. : " + b.AckNo,
		"Ack Date : " + b.AckDate,
		"Transporter Name : " + b.TransporterName,
		"Mode/Terms of Payment : " + b.PaymentTerms,
		"Delivery Note : " + b.DeliveryNote,
		"Supplier's Ref : " + b.SupplierRef,
		"Buyer's Order No. : " + b.BuyerOrderNo,
	}
	middle := []string{
		"Invoice No. : " + doc.InvoiceNo,
		"Dated : " + doc.Date,
		"Place of Supply : " + b.PlaceOfSupply,
		"Reverse Charge : " + b.ReverseCharge,
		"Vehicle No. : " + b.VehicleNo,
		"Dispatch Document No. : " + b.DispatchDocNo,
		"Delivery Note Date : " + b.DeliveryNoteDate,
	}
	right := []string{
		"K.M. : " + b.KM,
		"Job Card No. : " + b.JobCardNo,
		"Approval No. : " + b.ApprovalNo,
		"Booking No. : " + b.BookingNo,
		"Dispatch Through : " + b.DispatchThrough,
		"Destination : " + b.Destination,
		"Terms of Delivery : " + b.TermsOfDelivery,
	}

	pdf.SetFont("Helvetica", "", 8)
	colW := contentW / 3
	top := pdf.GetY()
	for i := 0; i < 8; i++ {
		y := top + float64(i)*lineHeight
		writeAt(pdf, marginX, y, colW, left[i])
		if i < len(middle) {
			writeAt(pdf, marginX+colW, y, colW, middle[i])
		}
		if i < len(right) {
			writeAt(pdf, marginX+2*colW, y, colW, right[i])
		}
	}
	pdf.SetY(top + 8*lineHeight + 1)
	hairline(pdf)
}

func renderParties(pdf *gofpdf.Fpdf, doc *entity.Invoice) {
	colW := contentW / 2

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(colW, lineHeight, "Billed to :", "", 0, "L", false, 0, "")
	pdf.CellFormat(colW, lineHeight, "Shipped to :", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, line := range []string{
		doc.Customer.Name,
		doc.Customer.Address,
		"GSTIN / UIN : " + doc.Customer.GSTIN,
	} {
		pdf.CellFormat(colW, lineHeight, line, "", 0, "L", false, 0, "")
		pdf.CellFormat(colW, lineHeight, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(1)
	hairline(pdf)
}

var columnWidths = [...]float64{12, 88, 18, 16, 28, 28}
var columnTitles = [...]string{"S.N", "Description of Goods", "Qty.", "Unit", "Price", "Amount(Rs.)"}

func renderItemsTable(pdf *gofpdf.Fpdf, doc *entity.Invoice) {
	pdf.SetFont("Helvetica", "B", 8)
	for i, title := range columnTitles {
		pdf.CellFormat(columnWidths[i], 5, title, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range doc.Rows {
		cells := [...]string{
			fmt.Sprintf("%d", row.Serial),
			row.Description,
			row.Quantity,
			row.Unit,
			row.UnitPrice,
			row.Amount,
		}
		for i, cell := range cells {
			align := "L"
			if i >= 4 {
				align = "R"
			}
			pdf.CellFormat(columnWidths[i], 5, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func renderSummary(pdf *gofpdf.Fpdf, doc *entity.Invoice) {
	labelW, valueW := 50.0, 30.0
	startX := pageWidth - marginX - labelW - valueW

	rows := [][2]string{
		{"Subtotal", doc.Subtotal},
		{fmt.Sprintf("GST (%s%%)", orZero(doc.GSTPercent)), doc.GSTAmount},
		{fmt.Sprintf("CST (%s%%)", orZero(doc.CSTPercent)), doc.CSTAmount},
		{"Grand Total", doc.GrandTotal},
	}

	pdf.Ln(2)
	for _, row := range rows {
		pdf.SetX(startX)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(labelW, 5, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(valueW, 5, row[1], "1", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, lineHeight, "Cash - "+doc.GrandTotal, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, lineHeight, "Rupees "+doc.AmountInWords, "", 1, "L", false, 0, "")
}

func renderFooter(pdf *gofpdf.Fpdf, doc *entity.Invoice) {
	pdf.Ln(3)
	hairline(pdf)
	pdf.SetFont("Helvetica", "", 7)
	pdf.MultiCell(contentW, 3.5, doc.Boilerplate.TermsAndBankLine, "", "L", false)

	y := pdf.GetY() + 4
	if png, err := qrcode.Encode(paymentReference(doc), qrcode.Medium, 192); err == nil {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("footer-qr", opts, bytes.NewReader(png))
		pdf.ImageOptions("footer-qr", marginX, y, 20, 20, false, opts, 0, "")
	}

	pdf.SetXY(pageWidth-marginX-70, y+8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(70, lineHeight, "For "+doc.Shop.Name, "", 2, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(70, lineHeight, "Authorised Signatory", "", 1, "R", false, 0, "")
}

// paymentReference is the string encoded into the invoice QR codes.
func paymentReference(doc *entity.Invoice) string {
	return fmt.Sprintf("upi://pay?pn=%s&tn=%s&am=%s", doc.Shop.Name, doc.InvoiceNo, doc.GrandTotal)
}

func orZero(pct string) string {
	if pct == "" {
		return "0"
	}
	return pct
}

func writeAt(pdf *gofpdf.Fpdf, x, y, w float64, text string) {
	pdf.SetXY(x, y)
	pdf.CellFormat(w, lineHeight, text, "", 0, "L", false, 0, "")
}

func hairline(pdf *gofpdf.Fpdf) {
	y := pdf.GetY()
	pdf.Line(marginX, y, pageWidth-marginX, y)
	pdf.Ln(1.5)
}
