package handlers

import (
	"strings"
	"testing"

	"github.com/m3rciful/hotelbot/internal/model"
)

func browseFixture() *fakeCatalog {
	return &fakeCatalog{
		categories: []string{"lux", "standard"},
		rooms: map[string][]model.Room{
			"lux":      {{ID: 1, Category: "lux", Price: 200, Description: "big"}},
			"standard": {{ID: 2, Category: "standard", Price: 90, Description: "small"}},
		},
		images: map[int64][]model.RoomImage{
			1: {{ID: 10, RoomID: 1, ImageURL: "http://img/1a"}, {ID: 11, RoomID: 1, ImageURL: "http://img/1b"}},
			2: {{ID: 20, RoomID: 2, ImageURL: "http://img/2a"}},
		},
	}
}

func TestEnterBrowserRendersFirstCategory(t *testing.T) {
	deliver := &fakeDeliverer{}
	h := newBookingHandlers(deliver, browseFixture(), &fakeReserver{})
	c := newTestContext(100)

	if err := h.EnterBrowser(c); err != nil {
		t.Fatalf("enter: %v", err)
	}

	session := h.Store.Get(100)
	if session.Browse == nil || session.Browse.Current() != "lux" {
		t.Fatalf("browse = %+v", session.Browse)
	}
	// Two album photos plus the control prompt.
	if len(session.Messages) != 3 {
		t.Fatalf("tracked messages = %v", session.Messages)
	}
	for _, o := range deliver.ops {
		if o.kind == "delete" {
			t.Fatal("first render must not delete anything")
		}
	}
}

func TestBrowseNextRetiresBeforeRender(t *testing.T) {
	deliver := &fakeDeliverer{}
	h := newBookingHandlers(deliver, browseFixture(), &fakeReserver{})
	c := newTestContext(100)

	if err := h.EnterBrowser(c); err != nil {
		t.Fatal(err)
	}
	firstPage := append([]int(nil), h.Store.Get(100).Messages...)
	opsBefore := len(deliver.ops)

	if err := h.BrowseNext(c); err != nil {
		t.Fatal(err)
	}

	ops := deliver.ops[opsBefore:]
	deleted := map[int]bool{}
	sendSeen := false
	for _, o := range ops {
		switch o.kind {
		case "delete":
			if sendSeen {
				t.Fatalf("delete after send: %+v", ops)
			}
			deleted[o.msgID] = true
		default:
			sendSeen = true
		}
	}
	for _, id := range firstPage {
		if !deleted[id] {
			t.Fatalf("message %d of the old page was not retired", id)
		}
	}

	session := h.Store.Get(100)
	if session.Browse.Current() != "standard" {
		t.Fatalf("category = %q", session.Browse.Current())
	}
	for _, id := range session.Messages {
		if deleted[id] {
			t.Fatalf("tracked list still holds retired id %d", id)
		}
	}
}

func TestBrowseWrapsAroundBothWays(t *testing.T) {
	deliver := &fakeDeliverer{}
	h := newBookingHandlers(deliver, browseFixture(), &fakeReserver{})
	c := newTestContext(100)

	if err := h.EnterBrowser(c); err != nil {
		t.Fatal(err)
	}
	if err := h.BrowsePrev(c); err != nil {
		t.Fatal(err)
	}
	if got := h.Store.Get(100).Browse.Current(); got != "standard" {
		t.Fatalf("prev from first = %q", got)
	}
	if err := h.BrowseNext(c); err != nil {
		t.Fatal(err)
	}
	if got := h.Store.Get(100).Browse.Current(); got != "lux" {
		t.Fatalf("next wrap = %q", got)
	}
}

func TestBrowseStepWithoutStateReenters(t *testing.T) {
	deliver := &fakeDeliverer{}
	h := newBookingHandlers(deliver, browseFixture(), &fakeReserver{})
	c := newTestContext(100)

	// prev_category arriving with no browser state starts the browser
	// fresh instead of failing.
	if err := h.BrowsePrev(c); err != nil {
		t.Fatal(err)
	}
	session := h.Store.Get(100)
	if session.Browse == nil || session.Browse.Current() != "lux" {
		t.Fatalf("browse = %+v", session.Browse)
	}
}

func TestRetireToleratesDeleteFailures(t *testing.T) {
	deliver := &fakeDeliverer{failDelete: true}
	h := newBookingHandlers(deliver, browseFixture(), &fakeReserver{})
	c := newTestContext(100)

	if err := h.EnterBrowser(c); err != nil {
		t.Fatal(err)
	}
	if err := h.BrowseNext(c); err != nil {
		t.Fatalf("render must survive delete failures: %v", err)
	}
	session := h.Store.Get(100)
	if session.Browse.Current() != "standard" {
		t.Fatalf("category = %q", session.Browse.Current())
	}
	if len(session.Messages) == 0 {
		t.Fatal("new page not tracked")
	}
}

func TestEnterBrowserNoCategories(t *testing.T) {
	deliver := &fakeDeliverer{}
	h := newBookingHandlers(deliver, &fakeCatalog{}, &fakeReserver{})
	c := newTestContext(100)

	if err := h.EnterBrowser(c); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(c.lastSent(), "no rooms") {
		t.Fatalf("message = %q", c.lastSent())
	}
	if h.Store.Get(100).Browse != nil {
		t.Fatal("browse state created with no categories")
	}
}
