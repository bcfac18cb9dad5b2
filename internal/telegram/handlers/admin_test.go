package handlers

import (
	"testing"
	"time"

	"github.com/m3rciful/hotelbot/internal/telegram/state"
)

func TestOrderEditInvalidQuantityReprompts(t *testing.T) {
	h := newBookingHandlers(&fakeDeliverer{}, &fakeCatalog{}, &fakeReserver{})
	c := newTestContext(7)

	orderDate := time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)
	if err := h.StartOrderEdit(c, 3, 9, orderDate); err != nil {
		t.Fatalf("StartOrderEdit: %v", err)
	}

	for _, bad := range []string{"not-a-number", "0", "-4"} {
		c.text = bad
		if err := h.HandleText(c); err != nil {
			t.Fatalf("HandleText(%q): %v", bad, err)
		}
		if got := h.Store.GetState(7); got != state.StateAdminEditValue {
			t.Fatalf("state after %q = %v, want StateAdminEditValue", bad, got)
		}
		if got := c.lastSent(); got != "Expected a positive number or 'delete'." {
			t.Fatalf("reply after %q = %q", bad, got)
		}
	}

	// The draft survives the re-prompts intact.
	draft := h.Store.Get(7).Admin
	if draft == nil || draft.GuestID != 3 || draft.ServiceID != 9 || !draft.OrderDate.Equal(orderDate) {
		t.Fatalf("draft after re-prompts = %+v", draft)
	}
}
