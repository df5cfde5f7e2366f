package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// BillingStatus represents the lifecycle state of a billing session
type BillingStatus int

const (
	BillingStatusDraft       BillingStatus = 0
	BillingStatusPreviewOpen BillingStatus = 1
	BillingStatusFinalizing  BillingStatus = 2
	BillingStatusFinalized   BillingStatus = 3
	BillingStatusCompleted   BillingStatus = 4
)

func (s BillingStatus) String() string {
	names := [...]string{"Draft", "PreviewOpen", "Finalizing", "Finalized", "Completed"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Draft"
	}
	return names[s]
}

// Mutable reports whether cart and tax fields may still be edited.
func (s BillingStatus) Mutable() bool {
	return s == BillingStatusDraft
}

// Locked reports whether the session has passed the point of no return.
func (s BillingStatus) Locked() bool {
	return s == BillingStatusFinalized || s == BillingStatusCompleted
}

// CanTransition reports whether moving from s to next is a legal step of
// the finalize state machine. "Back" from preview is only allowed before
// the lock is applied.
func (s BillingStatus) CanTransition(next BillingStatus) bool {
	switch s {
	case BillingStatusDraft:
		return next == BillingStatusPreviewOpen
	case BillingStatusPreviewOpen:
		return next == BillingStatusDraft || next == BillingStatusFinalizing
	case BillingStatusFinalizing:
		return next == BillingStatusPreviewOpen || next == BillingStatusFinalized
	case BillingStatusFinalized:
		return next == BillingStatusCompleted
	default:
		return false
	}
}

func (s BillingStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *BillingStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = BillingStatus(i)
		return nil
	}
	switch str {
	case "Draft":
		*s = BillingStatusDraft
	case "PreviewOpen":
		*s = BillingStatusPreviewOpen
	case "Finalizing":
		*s = BillingStatusFinalizing
	case "Finalized":
		*s = BillingStatusFinalized
	case "Completed":
		*s = BillingStatusCompleted
	}
	return nil
}

func (s BillingStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *BillingStatus) Scan(value interface{}) error {
	if value == nil {
		*s = BillingStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = BillingStatus(v)
	case int:
		*s = BillingStatus(v)
	}
	return nil
}
