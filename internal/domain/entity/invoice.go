package entity

// InvoiceBoilerplate holds the fixed e-invoice reference block printed on
// every invoice. These are deliberate literal placeholders carried over
// from the paper template; they are not derived from any input. Replace
// them only when a real e-invoicing source is integrated.
type InvoiceBoilerplate struct {
	IRN               string `json:"irn"`
	AckNo             string `json:"ack_no"`
	AckDate           string `json:"ack_date"`
	TransporterName   string `json:"transporter_name"`
	PaymentTerms      string `json:"payment_terms"`
	DeliveryNote      string `json:"delivery_note"`
	SupplierRef       string `json:"supplier_ref"`
	BuyerOrderNo      string `json:"buyer_order_no"`
	PlaceOfSupply     string `json:"place_of_supply"`
	ReverseCharge     string `json:"reverse_charge"`
	VehicleNo         string `json:"vehicle_no"`
	DispatchDocNo     string `json:"dispatch_doc_no"`
	DeliveryNoteDate  string `json:"delivery_note_date"`
	KM                string `json:"km"`
	JobCardNo         string `json:"job_card_no"`
	ApprovalNo        string `json:"approval_no"`
	BookingNo         string `json:"booking_no"`
	DispatchThrough   string `json:"dispatch_through"`
	Destination       string `json:"destination"`
	TermsOfDelivery   string `json:"terms_of_delivery"`
	TermsAndBankLine  string `json:"terms_and_bank_line"`
}

// DefaultInvoiceBoilerplate returns the template's literal constants.
func DefaultInvoiceBoilerplate() InvoiceBoilerplate {
	return InvoiceBoilerplate{
		IRN:              "1234ABCD5678EFGH",
		AckNo:            "9876543210",
		AckDate:          "2024-06-01",
		TransporterName:  "ABC Logistics",
		PaymentTerms:     "Online",
		DeliveryNote:     "2024-06-01",
		SupplierRef:      "SUPP12345",
		BuyerOrderNo:     "ORD67890",
		PlaceOfSupply:    "Uttar Pradesh (09)",
		ReverseCharge:    "N",
		VehicleNo:        "UP16AB1234",
		DispatchDocNo:    "DOC1234",
		DeliveryNoteDate: "2024-06-01",
		KM:               "120",
		JobCardNo:        "JC-2024-001",
		ApprovalNo:       "APPR-2024-001",
		BookingNo:        "BK-2024-001",
		DispatchThrough:  "Road",
		Destination:      "Noida",
		TermsOfDelivery:  "Immediate",
		TermsAndBankLine: "Terms & Conditions: Goods once sold will not be taken back. " +
			"This invoice is subject to Gautam Buddha Nagar jurisdiction. " +
			"Our Bank Details: A/C No: 777705377108 IFSC: ICIC0000031, ICICI BANK LTD, Sector-18, Noida",
	}
}

// InvoiceRow is one printed row of the items table.
type InvoiceRow struct {
	Serial      int    `json:"serial"`
	Description string `json:"description"`
	Quantity    string `json:"qty"`
	Unit        string `json:"unit"`
	UnitPrice   string `json:"price"`
	Amount      string `json:"amount"`
}

// Invoice is a value object representing the print-ready document. It is
// NOT a database entity; it is composed from a billing session at render
// time, so the exported artifact always matches the on-screen totals.
type Invoice struct {
	Shop          ShopProfile        `json:"shop"`
	Customer      CustomerProfile    `json:"customer"`
	Boilerplate   InvoiceBoilerplate `json:"boilerplate"`
	InvoiceNo     string             `json:"invoice_no"`
	Date          string             `json:"date"`
	Rows          []InvoiceRow       `json:"rows"`
	Subtotal      string             `json:"subtotal"`
	GSTPercent    string             `json:"gst_percent"`
	GSTAmount     string             `json:"gst_amount"`
	CSTPercent    string             `json:"cst_percent"`
	CSTAmount     string             `json:"cst_amount"`
	GrandTotal    string             `json:"grand_total"`
	AmountInWords string             `json:"amount_in_words"`
}
