package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/entity"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/enum"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/repository"
	"github.com/tyreshoppe/shopdesk-api/pkg/apperror"
	"github.com/tyreshoppe/shopdesk-api/pkg/catalog"
	"github.com/tyreshoppe/shopdesk-api/pkg/email"
	"github.com/tyreshoppe/shopdesk-api/pkg/invoice"
	"github.com/tyreshoppe/shopdesk-api/pkg/pagination"
	"github.com/tyreshoppe/shopdesk-api/pkg/utils"
)

// BillingService drives the invoice lifecycle: an editable draft cart,
// a preview, and a one-shot finalize that submits the order upstream
// and locks the invoice.
type BillingService struct {
	billingRepo      repository.BillingRepository
	notificationRepo repository.NotificationRepository
	catalogClient    *catalog.Client
	emailService     *email.Service
}

// NewBillingService creates a new billing service
func NewBillingService(
	billingRepo repository.BillingRepository,
	notificationRepo repository.NotificationRepository,
	catalogClient *catalog.Client,
	emailService *email.Service,
) *BillingService {
	return &BillingService{
		billingRepo:      billingRepo,
		notificationRepo: notificationRepo,
		catalogClient:    catalogClient,
		emailService:     emailService,
	}
}

// ActiveSession returns the user's open billing session, creating a
// fresh one with the default shop profile when none exists.
func (s *BillingService) ActiveSession(ctx context.Context, userID uuid.UUID) (*entity.BillingSession, error) {
	session, err := s.billingRepo.GetActiveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session != nil {
		return session, nil
	}

	session = &entity.BillingSession{
		UserID: userID,
		Status: enum.BillingStatusDraft,
		Shop:   entity.DefaultShopProfile(),
	}
	if err := s.billingRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession returns a session owned by the user
func (s *BillingService) GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*entity.BillingSession, error) {
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
	return session, nil
}

// mutableSession loads a session and rejects edits outside the draft
// state. A finalized invoice answers with the locked error so the UI
// can tell "locked" apart from "preview is open".
func (s *BillingService) mutableSession(ctx context.Context, userID, sessionID uuid.UUID) (*entity.BillingSession, error) {
	session, err := s.GetSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status.Locked() {
		return nil, apperror.ErrSessionLocked
	}
	if !session.Status.Mutable() {
		return nil, apperror.ErrInvalidTransition
	}
	return session, nil
}

// UpdateSessionInput carries partial edits to the invoice header. Tax
// percents arrive as the raw strings typed into the form.
type UpdateSessionInput struct {
	Shop       *entity.ShopProfile
	Customer   *entity.CustomerProfile
	GSTPercent *string
	CSTPercent *string
}

// UpdateSession applies header edits to a draft session
func (s *BillingService) UpdateSession(ctx context.Context, userID, sessionID uuid.UUID, input *UpdateSessionInput) (*entity.BillingSession, error) {
	session, err := s.mutableSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if input.Shop != nil {
		session.Shop = *input.Shop
	}
	if input.Customer != nil {
		session.Customer = *input.Customer
	}
	if input.GSTPercent != nil {
		session.GSTPercent = *input.GSTPercent
	}
	if input.CSTPercent != nil {
		session.CSTPercent = *input.CSTPercent
	}

	if err := s.billingRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// LineInput carries one cart row as typed. Quantity and price stay raw
// strings; validation happens only at totals time.
type LineInput struct {
	Description  string
	Quantity     string
	Unit         string
	UnitPrice    string
	SourceTyreID *string
	Size         string
}

// AddLine appends a row to the cart. Rows are never merged; adding the
// same tyre twice yields two rows.
func (s *BillingService) AddLine(ctx context.Context, userID, sessionID uuid.UUID, input *LineInput) (*entity.BillLine, error) {
	session, err := s.mutableSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	unit := input.Unit
	if unit == "" {
		unit = "No."
	}

	// Positions are never reused after a remove, so print order stays
	// unambiguous.
	position := 0
	for i := range session.Lines {
		if session.Lines[i].Position >= position {
			position = session.Lines[i].Position + 1
		}
	}

	line := &entity.BillLine{
		SessionID:    session.ID,
		Position:     position,
		Description:  input.Description,
		Quantity:     input.Quantity,
		Unit:         unit,
		UnitPrice:    input.UnitPrice,
		SourceTyreID: input.SourceTyreID,
		Size:         input.Size,
	}
	if err := s.billingRepo.AddLine(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

// AddCatalogLine looks a tyre up in the upstream catalog and adds it
// to the cart at the listed size price with quantity 1. A size with
// zero stock adds nothing and returns a nil line.
func (s *BillingService) AddCatalogLine(ctx context.Context, userID, sessionID uuid.UUID, token string, source enum.StockSource, tyreID, size string) (*entity.BillLine, error) {
	if token == "" {
		return nil, apperror.ErrCredentialRequired
	}
	if !source.Valid() {
		return nil, apperror.NewBadRequestError("Unknown stock source")
	}
	if _, err := s.mutableSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}

	var entries []catalog.TyreEntry
	var err error
	if source == enum.StockSourcePartner {
		entries, err = s.catalogClient.FetchPartnerStock(ctx, token)
	} else {
		entries, err = s.catalogClient.FetchOwnInventory(ctx, token)
	}
	if err != nil {
		return nil, err
	}

	var entry *catalog.TyreEntry
	for i := range entries {
		if entries[i].ID == tyreID {
			entry = &entries[i]
			break
		}
	}
	if entry == nil {
		return nil, apperror.NewNotFoundError("Tyre")
	}

	var row *catalog.SizeStock
	for i := range entry.Stock {
		if entry.Stock[i].Size == size {
			row = &entry.Stock[i]
			break
		}
	}
	if row == nil {
		return nil, apperror.NewNotFoundError("Tyre size")
	}
	if row.Quantity <= 0 {
		return nil, nil
	}

	id := entry.ID
	return s.AddLine(ctx, userID, sessionID, &LineInput{
		Description:  strings.TrimSpace(entry.Brand + " " + entry.Model),
		Quantity:     "1",
		UnitPrice:    strconv.FormatFloat(row.Price, 'f', -1, 64),
		SourceTyreID: &id,
		Size:         row.Size,
	})
}

// UpdateLine edits one cart row in place, keeping its position
func (s *BillingService) UpdateLine(ctx context.Context, userID, sessionID, lineID uuid.UUID, input *LineInput) (*entity.BillLine, error) {
	session, err := s.mutableSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	var line *entity.BillLine
	for i := range session.Lines {
		if session.Lines[i].ID == lineID {
			line = &session.Lines[i]
			break
		}
	}
	if line == nil {
		return nil, apperror.NewNotFoundError("Bill line")
	}

	line.Description = input.Description
	line.Quantity = input.Quantity
	line.UnitPrice = input.UnitPrice
	line.Size = input.Size
	if input.Unit != "" {
		line.Unit = input.Unit
	}
	if input.SourceTyreID != nil {
		line.SourceTyreID = input.SourceTyreID
	}

	if err := s.billingRepo.UpdateLine(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

// RemoveLine deletes one cart row. Remaining rows keep their positions,
// so print order is untouched.
func (s *BillingService) RemoveLine(ctx context.Context, userID, sessionID, lineID uuid.UUID) error {
	session, err := s.mutableSession(ctx, userID, sessionID)
	if err != nil {
		return err
	}

	for i := range session.Lines {
		if session.Lines[i].ID == lineID {
			return s.billingRepo.RemoveLine(ctx, lineID)
		}
	}
	return apperror.NewNotFoundError("Bill line")
}

// ClearCart removes every row from a draft session
func (s *BillingService) ClearCart(ctx context.Context, userID, sessionID uuid.UUID) error {
	session, err := s.mutableSession(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	return s.billingRepo.ClearLines(ctx, session.ID)
}

// OpenPreview moves a draft into the read-only preview state and stamps
// an invoice number on first open.
func (s *BillingService) OpenPreview(ctx context.Context, userID, sessionID uuid.UUID) (*entity.BillingSession, error) {
	session, err := s.GetSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status.Locked() {
		return nil, apperror.ErrSessionLocked
	}

	if session.InvoiceNo == "" {
		session.InvoiceNo = utils.GenerateInvoiceNo("INV")
		if err := s.billingRepo.Update(ctx, session); err != nil {
			return nil, err
		}
	}

	ok, err := s.billingRepo.UpdateStatusIf(ctx, session.ID, enum.BillingStatusDraft, enum.BillingStatusPreviewOpen)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.ErrInvalidTransition
	}

	session.Status = enum.BillingStatusPreviewOpen
	return session, nil
}

// ClosePreview returns a previewed invoice to the editable draft state
func (s *BillingService) ClosePreview(ctx context.Context, userID, sessionID uuid.UUID) error {
	session, err := s.GetSession(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	if session.Status.Locked() {
		return apperror.ErrSessionLocked
	}

	ok, err := s.billingRepo.UpdateStatusIf(ctx, session.ID, enum.BillingStatusPreviewOpen, enum.BillingStatusDraft)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.ErrInvalidTransition
	}
	return nil
}

// Finalize submits the invoice's order upstream exactly once and locks
// the session. The conditional status move to Finalizing is the gate: a
// concurrent second finalize loses it and gets a conflict. On upstream
// failure the session drops back to preview so the operator can retry.
func (s *BillingService) Finalize(ctx context.Context, userID, sessionID uuid.UUID, token string) (*entity.BillingSession, error) {
	if token == "" {
		return nil, apperror.ErrCredentialRequired
	}

	session, err := s.GetSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status.Locked() {
		return nil, apperror.ErrSessionLocked
	}
	if session.Status == enum.BillingStatusFinalizing {
		return nil, apperror.ErrFinalizeInFlight
	}
	if session.Status != enum.BillingStatusPreviewOpen {
		return nil, apperror.ErrInvalidTransition
	}
	if len(session.Lines) == 0 {
		return nil, apperror.NewBadRequestError("Cannot finalize an empty invoice")
	}

	ok, err := s.billingRepo.UpdateStatusIf(ctx, session.ID, enum.BillingStatusPreviewOpen, enum.BillingStatusFinalizing)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.ErrFinalizeInFlight
	}

	payload := buildFinalizePayload(session)
	if err := s.catalogClient.FinalizeOrder(ctx, token, payload); err != nil {
		// Unlock so the operator can retry after fixing the upstream issue.
		if _, revertErr := s.billingRepo.UpdateStatusIf(ctx, session.ID, enum.BillingStatusFinalizing, enum.BillingStatusPreviewOpen); revertErr != nil {
			log.Printf("billing: failed to revert session %s to preview after upstream error: %v", session.ID, revertErr)
		}
		return nil, err
	}

	now := time.Now()
	session.Status = enum.BillingStatusFinalized
	session.FinalizedAt = &now
	if err := s.billingRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	s.notifyFinalized(ctx, session)
	return session, nil
}

// buildFinalizePayload flattens the session into the single order
// payload the platform expects. Every cart row is reported, catalog
// tyres and manual service lines alike.
func buildFinalizePayload(session *entity.BillingSession) *catalog.FinalizeOrderRequest {
	items := make([]catalog.OrderHistoryItem, 0, len(session.Lines))
	for _, line := range session.Lines {
		qty, _ := strconv.ParseFloat(line.Quantity, 64)
		tyreID := ""
		if line.SourceTyreID != nil {
			tyreID = *line.SourceTyreID
		}
		items = append(items, catalog.OrderHistoryItem{
			TyreID:               tyreID,
			InvoiceURL:           invoice.ExportFilename,
			Size:                 line.Size,
			Quantity:             qty,
			VehicleNumber:        session.Customer.VehicleNumber,
			CustomerPurchaseType: session.Customer.PurchaseType,
		})
	}

	totals := session.Totals()
	return &catalog.FinalizeOrderRequest{
		CustomerName:     session.Customer.Name,
		AddressProofType: session.Customer.AddressProofType,
		Pincode:          session.Customer.Pincode,
		Address:          session.Customer.Address,
		PhoneNumber:      session.Customer.PhoneNumber,
		OrderHistory: catalog.OrderHistory{
			Items:       items,
			TotalAmount: totals.GrandTotal.InexactFloat64(),
			OrderDate:   time.Now().Format("2006-01-02"),
		},
	}
}

func (s *BillingService) notifyFinalized(ctx context.Context, session *entity.BillingSession) {
	totals := session.Totals()

	notification := &entity.Notification{
		UserID:  session.UserID,
		Actor:   session.Customer.Name,
		Type:    enum.NotificationTypeBilling,
		Message: fmt.Sprintf("Invoice %s finalized", session.InvoiceNo),
		Details: fmt.Sprintf("Customer %s, grand total Rs. %s",
			session.Customer.Name, totals.GrandTotal.StringFixed(2)),
	}
	// Best effort; a failed notification must not undo a finalize.
	_ = s.notificationRepo.Create(ctx, notification)

	if s.emailService != nil && s.emailService.IsConfigured() {
		_ = s.emailService.SendInvoiceFinalizedEmail(
			session.Shop.Email, session.InvoiceNo,
			session.Customer.Name, totals.GrandTotal.StringFixed(2))
	}
}

// Complete archives a finalized invoice. The next ActiveSession call
// starts a fresh draft with the default shop profile.
func (s *BillingService) Complete(ctx context.Context, userID, sessionID uuid.UUID) error {
	session, err := s.GetSession(ctx, userID, sessionID)
	if err != nil {
		return err
	}

	ok, err := s.billingRepo.UpdateStatusIf(ctx, session.ID, enum.BillingStatusFinalized, enum.BillingStatusCompleted)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.ErrInvalidTransition
	}
	return nil
}

// ListSessions lists the user's billing sessions with filtering
func (s *BillingService) ListSessions(ctx context.Context, userID uuid.UUID, params *repository.BillingFilterParams) (*pagination.PaginatedResult[entity.BillingSession], error) {
	sessions, total, err := s.billingRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sessions, pag), nil
}
