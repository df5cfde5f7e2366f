package enum

import "testing"

func TestBillingStatusTransitions(t *testing.T) {
	t.Parallel()

	allowed := map[BillingStatus][]BillingStatus{
		BillingStatusDraft:       {BillingStatusPreviewOpen},
		BillingStatusPreviewOpen: {BillingStatusDraft, BillingStatusFinalizing},
		BillingStatusFinalizing:  {BillingStatusPreviewOpen, BillingStatusFinalized},
		BillingStatusFinalized:   {BillingStatusCompleted},
		BillingStatusCompleted:   {},
	}

	all := []BillingStatus{
		BillingStatusDraft, BillingStatusPreviewOpen, BillingStatusFinalizing,
		BillingStatusFinalized, BillingStatusCompleted,
	}

	for from, nexts := range allowed {
		ok := map[BillingStatus]bool{}
		for _, n := range nexts {
			ok[n] = true
		}
		for _, to := range all {
			if got := from.CanTransition(to); got != ok[to] {
				t.Errorf("%s -> %s: got %v, want %v", from, to, got, ok[to])
			}
		}
	}
}

func TestBillingStatusLocked(t *testing.T) {
	t.Parallel()

	if BillingStatusDraft.Locked() || BillingStatusPreviewOpen.Locked() || BillingStatusFinalizing.Locked() {
		t.Fatal("pre-finalize states must not be locked")
	}
	if !BillingStatusFinalized.Locked() || !BillingStatusCompleted.Locked() {
		t.Fatal("finalized and completed states must be locked")
	}
	if !BillingStatusDraft.Mutable() || BillingStatusFinalized.Mutable() {
		t.Fatal("only draft sessions are mutable")
	}
}
