package catalog

// SizeStock is one size row of a tyre entry: availability and price.
type SizeStock struct {
	Size     string  `json:"size"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// TyreEntry is a catalog stock entry, the common shape for both partner
// stock and own inventory.
type TyreEntry struct {
	ID          string      `json:"id"`
	Brand       string      `json:"brand"`
	Model       string      `json:"model"`
	Type        string      `json:"type"`
	VehicleType string      `json:"vehicleType"`
	Warranty    string      `json:"warranty"`
	Stock       []SizeStock `json:"stock"`
}

// SizeFor returns the stock row for a size, if present.
func (e *TyreEntry) SizeFor(size string) (SizeStock, bool) {
	for _, s := range e.Stock {
		if s.Size == size {
			return s, true
		}
	}
	return SizeStock{}, false
}

// shopStocksResponse is the partner-stock wire shape: entries arrive
// nested under tyreDetails with sizes alongside.
type shopStocksResponse struct {
	ShopStocks []struct {
		TyreID      string `json:"tyreId"`
		TyreDetails struct {
			Brand       string `json:"brand"`
			Model       string `json:"model"`
			Type        string `json:"type"`
			VehicleType string `json:"vehicleType"`
			Warranty    string `json:"warranty"`
		} `json:"tyreDetails"`
		Sizes []SizeStock `json:"sizes"`
	} `json:"shopStocks"`
}

// OwnTyreInput is the payload for adding a tyre to own inventory.
type OwnTyreInput struct {
	Brand       string      `json:"brand"`
	Model       string      `json:"model"`
	Type        string      `json:"type"`
	VehicleType string      `json:"vehicleType"`
	LoadIndex   int         `json:"loadIndex"`
	Warranty    string      `json:"warranty"`
	Images      []string    `json:"images"`
	Stock       []SizeStock `json:"stock"`
}

// OrderHistoryItem is one sold line inside a finalized order.
type OrderHistoryItem struct {
	TyreID               string  `json:"tyreId"`
	InvoiceURL           string  `json:"invoiceUrl"`
	Size                 string  `json:"size"`
	Quantity             float64 `json:"quantity"`
	VehicleNumber        string  `json:"vehicleNumber"`
	CustomerPurchaseType string  `json:"customerPurchaseType"`
}

// OrderHistory groups the sold lines with the charged amount.
type OrderHistory struct {
	Items       []OrderHistoryItem `json:"items"`
	TotalAmount float64            `json:"totalAmount"`
	OrderDate   string             `json:"orderDate"`
}

// FinalizeOrderRequest is the immutable payload submitted exactly once
// when an invoice is finalized.
type FinalizeOrderRequest struct {
	CustomerName     string       `json:"customerName"`
	AddressProofType string       `json:"addressProofType"`
	Pincode          string       `json:"pincode"`
	Address          string       `json:"address"`
	PhoneNumber      string       `json:"phoneNumber"`
	OrderHistory     OrderHistory `json:"orderHistory"`
}

// OrderItem is one line of a customer order held by the platform.
type OrderItem struct {
	TyreID   string `json:"tyreId"`
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// CustomerOrder is a customer order as returned by the platform.
type CustomerOrder struct {
	OrderID       string      `json:"orderId"`
	AppointmentID string      `json:"appointmentId"`
	Status        string      `json:"status"`
	OrderStatus   string      `json:"orderstatus"`
	CustomerName  string      `json:"customerName"`
	Items         []OrderItem `json:"orderItems"`
}

// TyreSpec is one requested tyre specification line.
type TyreSpec struct {
	TyreID   string `json:"tyreId"`
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// TyreRequestInput is the payload for requesting tyres from the partner.
type TyreRequestInput struct {
	Comments      string     `json:"comments"`
	Specification []TyreSpec `json:"specification"`
}

// TyreRequest is a submitted tyre request with its approval status.
type TyreRequest struct {
	RequestID      string     `json:"requestId"`
	Status         string     `json:"status"`
	Comments       string     `json:"comments"`
	Specifications []TyreSpec `json:"specifications"`
}

// Tyre request statuses reported by the platform.
const (
	RequestStatusPending  = "Pending"
	RequestStatusApproved = "Approved"
	RequestStatusRejected = "Rejected"
)
