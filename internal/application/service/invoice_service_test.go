package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestBuildInvoiceFormatsUnitPrices(t *testing.T) {
	f := newBillingFixture(t, http.StatusOK)
	svc := NewInvoiceService(f.billingRepo)
	ctx := context.Background()
	userID := uuid.New()

	session, err := f.svc.ActiveSession(ctx, userID)
	require.NoError(t, err)

	_, err = f.svc.AddLine(ctx, userID, session.ID, &LineInput{
		Description: "MRF ZVTS 145/80 R12", Quantity: "2", UnitPrice: "3200",
	})
	require.NoError(t, err)
	_, err = f.svc.AddLine(ctx, userID, session.ID, &LineInput{
		Description: "Balancing", Quantity: "1", UnitPrice: "149.5",
	})
	require.NoError(t, err)
	_, err = f.svc.AddLine(ctx, userID, session.ID, &LineInput{
		Description: "Old tyre disposal", Quantity: "1", UnitPrice: "free",
	})
	require.NoError(t, err)

	doc, err := svc.BuildInvoice(ctx, userID, session.ID)
	require.NoError(t, err)
	require.Len(t, doc.Rows, 3)

	require.Equal(t, "3200.00", doc.Rows[0].UnitPrice)
	require.Equal(t, "6400.00", doc.Rows[0].Amount)
	require.Equal(t, "149.50", doc.Rows[1].UnitPrice)

	// Text that is not a number prints as typed and contributes nothing.
	require.Equal(t, "free", doc.Rows[2].UnitPrice)
	require.Equal(t, "0.00", doc.Rows[2].Amount)
	require.Equal(t, "6549.50", doc.GrandTotal)
}

func TestBuildInvoiceChecksOwnership(t *testing.T) {
	f := newBillingFixture(t, http.StatusOK)
	svc := NewInvoiceService(f.billingRepo)
	ctx := context.Background()
	userID := uuid.New()

	session, err := f.svc.ActiveSession(ctx, userID)
	require.NoError(t, err)

	_, err = svc.BuildInvoice(ctx, uuid.New(), session.ID)
	require.Error(t, err)
}
