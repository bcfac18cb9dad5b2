package router

import (
	"testing"

	"github.com/m3rciful/hotelbot/internal/telegram/handlers"

	tele "gopkg.in/telebot.v4"
)

func TestHandleCallbackStaleTokenAckOnly(t *testing.T) {
	r := New(&handlers.Handlers{}, lookupStub{})

	// A button from a keyboard of a previous deployment: acknowledged
	// so the spinner clears, but the user is not shouted at.
	c := &sentContext{cb: &tele.Callback{Data: "\flegacy_show_prices"}}
	if err := r.HandleCallback(c); err != nil {
		t.Fatalf("HandleCallback: %v", err)
	}
	if len(c.sent) != 0 {
		t.Fatalf("sent = %q, want nothing", c.sent)
	}
	if !c.acked {
		t.Fatal("callback was not acknowledged")
	}
}

func TestHandleCallbackMalformedParamsRejected(t *testing.T) {
	r := New(&handlers.Handlers{}, lookupStub{})

	c := &sentContext{cb: &tele.Callback{Data: "\fbook_abc"}}
	if err := r.HandleCallback(c); err != nil {
		t.Fatalf("HandleCallback: %v", err)
	}
	if len(c.sent) != 1 || c.sent[0] != "Invalid request." {
		t.Fatalf("sent = %q, want the rejection message", c.sent)
	}
	if !c.acked {
		t.Fatal("callback was not acknowledged")
	}
}
