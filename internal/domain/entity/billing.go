package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Default shop profile restored on every session reset.
const (
	DefaultShopGSTIN   = "09AADCT9146L1ZQ"
	DefaultShopName    = "TYRE SHOPPE INDIA PVT LTD"
	DefaultShopAddress = "B-54 Sector-5, Noida (201301), U.P."
	DefaultShopPAN     = "AADCT9146L"
	DefaultShopPhone   = "8882808080"
	DefaultShopEmail   = "mail@tyresshoppe.com"
)

// ShopProfile holds the seller identity printed on the invoice header.
type ShopProfile struct {
	GSTIN   string `gorm:"size:50" json:"gstin"`
	Name    string `gorm:"size:255" json:"name"`
	Address string `gorm:"type:text" json:"address"`
	PAN     string `gorm:"size:50" json:"pan"`
	Phone   string `gorm:"size:50" json:"phone"`
	Email   string `gorm:"size:255" json:"email"`
}

// DefaultShopProfile returns the documented shop defaults.
func DefaultShopProfile() ShopProfile {
	return ShopProfile{
		GSTIN:   DefaultShopGSTIN,
		Name:    DefaultShopName,
		Address: DefaultShopAddress,
		PAN:     DefaultShopPAN,
		Phone:   DefaultShopPhone,
		Email:   DefaultShopEmail,
	}
}

// CustomerProfile holds the buyer details captured on the billing form.
type CustomerProfile struct {
	Name             string `gorm:"size:255" json:"name"`
	Address          string `gorm:"type:text" json:"address"`
	GSTIN            string `gorm:"size:50" json:"gstin"`
	PhoneNumber      string `gorm:"size:50" json:"phone_number"`
	VehicleNumber    string `gorm:"size:50" json:"vehicle_number"`
	PurchaseType     string `gorm:"size:50;default:'owncustomer'" json:"customer_purchase_type"`
	AddressProofType string `gorm:"size:100;default:'Aadhar Card'" json:"address_proof_type"`
	Pincode          string `gorm:"size:20" json:"pincode"`
}

// BillingSession is one invoice-in-progress. Quantity, price and tax
// percent fields are kept as the raw strings the operator typed; they are
// parsed only when totals are computed, so a malformed value is preserved
// for editing while contributing zero to the sum.
type BillingSession struct {
	ID          uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	Status      enum.BillingStatus `gorm:"default:0" json:"status"`
	Shop        ShopProfile        `gorm:"embedded;embeddedPrefix:shop_" json:"shop"`
	Customer    CustomerProfile    `gorm:"embedded;embeddedPrefix:customer_" json:"customer"`
	GSTPercent  string             `gorm:"size:20" json:"gst_percent"`
	CSTPercent  string             `gorm:"size:20" json:"cst_percent"`
	InvoiceNo   string             `gorm:"size:100" json:"invoice_no"`
	FinalizedAt *time.Time         `json:"finalized_at,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	DeletedAt   gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Lines []BillLine `gorm:"foreignKey:SessionID" json:"lines,omitempty"`
}

// BeforeCreate generates a UUID before creating a new session
func (s *BillingSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillingSession model
func (BillingSession) TableName() string {
	return "billing_sessions"
}

// BillLine is one row of the billing cart. Insertion order (Position) is
// the invoice print order; duplicate rows are never merged.
type BillLine struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SessionID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"session_id"`
	Position     int            `gorm:"not null" json:"position"`
	Description  string         `gorm:"type:text" json:"description"`
	Quantity     string         `gorm:"size:50" json:"qty"`
	Unit         string         `gorm:"size:50;default:'No.'" json:"unit"`
	UnitPrice    string         `gorm:"size:50" json:"price"`
	SourceTyreID *string        `gorm:"size:100" json:"tyre_id,omitempty"`
	Size         string         `gorm:"size:50" json:"size,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new line
func (l *BillLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillLine model
func (BillLine) TableName() string {
	return "bill_lines"
}

// Amount returns quantity x unit price when both parse to finite values
// greater than zero, else zero. Never stored; recomputed on demand.
func (l *BillLine) Amount() decimal.Decimal {
	qty, err := decimal.NewFromString(l.Quantity)
	if err != nil || !qty.IsPositive() {
		return decimal.Zero
	}
	price, err := decimal.NewFromString(l.UnitPrice)
	if err != nil || !price.IsPositive() {
		return decimal.Zero
	}
	return qty.Mul(price)
}

// InvoiceTotals is the derived view over a cart and its tax config. It is
// never persisted; values stay at full precision until rendered.
type InvoiceTotals struct {
	Subtotal   decimal.Decimal
	GSTAmount  decimal.Decimal
	CSTAmount  decimal.Decimal
	GrandTotal decimal.Decimal
}

// MarshalJSON renders totals to two decimal places for API responses
func (t InvoiceTotals) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Subtotal   string `json:"subtotal"`
		GSTAmount  string `json:"gst_amount"`
		CSTAmount  string `json:"cst_amount"`
		GrandTotal string `json:"grand_total"`
	}{
		Subtotal:   t.Subtotal.StringFixed(2),
		GSTAmount:  t.GSTAmount.StringFixed(2),
		CSTAmount:  t.CSTAmount.StringFixed(2),
		GrandTotal: t.GrandTotal.StringFixed(2),
	})
}

// CalculateTotals is a pure function from (cart, tax config) to totals.
// Lines with a malformed or non-positive quantity or price contribute
// zero; an unparseable percent counts as zero tax.
func CalculateTotals(lines []BillLine, gstPercent, cstPercent string) InvoiceTotals {
	subtotal := decimal.Zero
	for i := range lines {
		subtotal = subtotal.Add(lines[i].Amount())
	}

	gst := percentOf(subtotal, gstPercent)
	cst := percentOf(subtotal, cstPercent)

	return InvoiceTotals{
		Subtotal:   subtotal,
		GSTAmount:  gst,
		CSTAmount:  cst,
		GrandTotal: subtotal.Add(gst).Add(cst),
	}
}

var hundred = decimal.NewFromInt(100)

func percentOf(base decimal.Decimal, percent string) decimal.Decimal {
	pct, err := decimal.NewFromString(percent)
	if err != nil || pct.IsNegative() {
		return decimal.Zero
	}
	return base.Mul(pct).Div(hundred)
}

// Totals computes the session's current invoice totals.
func (s *BillingSession) Totals() InvoiceTotals {
	return CalculateTotals(s.Lines, s.GSTPercent, s.CSTPercent)
}
