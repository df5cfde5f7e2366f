package request

// SizeStockRequest is one size row when adding inventory
type SizeStockRequest struct {
	Size     string  `json:"size" binding:"required"`
	Quantity int     `json:"quantity" binding:"required,gt=0"`
	Price    float64 `json:"price" binding:"required,gt=0"`
}

// AddOwnTyreRequest adds a tyre to the shop's own inventory
type AddOwnTyreRequest struct {
	Brand       string             `json:"brand" binding:"required"`
	Model       string             `json:"model" binding:"required"`
	Type        string             `json:"type"`
	VehicleType string             `json:"vehicleType"`
	LoadIndex   int                `json:"loadIndex"`
	Warranty    string             `json:"warranty"`
	Images      []string           `json:"images"`
	Stock       []SizeStockRequest `json:"stock" binding:"required,min=1,dive"`
}

// TyreSpecRequest is one requested tyre specification line
type TyreSpecRequest struct {
	TyreID   string `json:"tyreId"`
	Brand    string `json:"brand" binding:"required"`
	Model    string `json:"model" binding:"required"`
	Size     string `json:"size" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// CreateTyreRequestRequest submits a restock request to the partner
type CreateTyreRequestRequest struct {
	Comments      string            `json:"comments"`
	Specification []TyreSpecRequest `json:"specification" binding:"required,min=1,dive"`
}

// CompleteOrderRequest marks a tyre order delivered
type CompleteOrderRequest struct {
	OrderID string `json:"orderId" binding:"required"`
}

// CompleteAppointmentRequest marks a fitment appointment done
type CompleteAppointmentRequest struct {
	AppointmentID string `json:"appointmentId" binding:"required"`
	OrderID       string `json:"orderId" binding:"required"`
}
