package request

// ShopProfileRequest carries seller details for the invoice header
type ShopProfileRequest struct {
	GSTIN   string `json:"gstin"`
	Name    string `json:"name"`
	Address string `json:"address"`
	PAN     string `json:"pan"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// CustomerProfileRequest carries buyer details typed into the billing form
type CustomerProfileRequest struct {
	Name             string `json:"name"`
	Address          string `json:"address"`
	GSTIN            string `json:"gstin"`
	PhoneNumber      string `json:"phone_number"`
	VehicleNumber    string `json:"vehicle_number"`
	PurchaseType     string `json:"customer_purchase_type"`
	AddressProofType string `json:"address_proof_type"`
	Pincode          string `json:"pincode"`
}

// UpdateSessionRequest carries partial edits to the invoice header.
// Tax percents stay strings; whatever was typed is preserved.
type UpdateSessionRequest struct {
	Shop       *ShopProfileRequest     `json:"shop"`
	Customer   *CustomerProfileRequest `json:"customer"`
	GSTPercent *string                 `json:"gst_percent"`
	CSTPercent *string                 `json:"cst_percent"`
}

// LineRequest carries one cart row as typed
type LineRequest struct {
	Description  string  `json:"description" binding:"required"`
	Quantity     string  `json:"qty"`
	Unit         string  `json:"unit"`
	UnitPrice    string  `json:"price"`
	SourceTyreID *string `json:"tyre_id"`
	Size         string  `json:"size"`
}

// AddCatalogLineRequest adds a catalog tyre to the cart by reference
type AddCatalogLineRequest struct {
	Source string `json:"source" binding:"required"`
	TyreID string `json:"tyreId" binding:"required"`
	Size   string `json:"size" binding:"required"`
}
