package state

import (
	"sync"
	"testing"
)

func TestGetUnknownUserIsIdle(t *testing.T) {
	m := NewMemoryManager()
	s := m.Get(1)
	if s.State != StateIdle {
		t.Fatalf("state = %q, want idle", s.State)
	}
	if s.Booking != nil || s.Browse != nil || s.Admin != nil || s.Order != nil {
		t.Fatal("fresh session carries drafts")
	}
}

func TestSetStatePreservesDrafts(t *testing.T) {
	m := NewMemoryManager()
	m.Update(7, func(s *Session) {
		s.Booking = &BookingDraft{RoomID: 3, FirstName: "Ann"}
	})
	m.SetState(7, StateBookingLastName)

	s := m.Get(7)
	if s.State != StateBookingLastName {
		t.Fatalf("state = %q", s.State)
	}
	if s.Booking == nil || s.Booking.RoomID != 3 || s.Booking.FirstName != "Ann" {
		t.Fatalf("draft lost: %+v", s.Booking)
	}
}

func TestClearDropsEverything(t *testing.T) {
	m := NewMemoryManager()
	m.Update(7, func(s *Session) {
		s.State = StateBroadcastText
		s.BroadcastText = "hi"
		s.Messages = []int{1, 2, 3}
		s.Admin = &AdminDraft{Entity: "room", TargetID: 5}
	})
	m.Clear(7)

	s := m.Get(7)
	if s.State != StateIdle || s.BroadcastText != "" || s.Messages != nil || s.Admin != nil {
		t.Fatalf("session not cleared: %+v", s)
	}
}

func TestInProgress(t *testing.T) {
	m := NewMemoryManager()
	if m.InProgress(9) {
		t.Fatal("unknown user reported in progress")
	}
	m.SetState(9, StateOrderQuantity)
	if !m.InProgress(9) {
		t.Fatal("active flow not reported")
	}
	m.Clear(9)
	if m.InProgress(9) {
		t.Fatal("cleared session still in progress")
	}
}

func TestGetReturnsCopy(t *testing.T) {
	m := NewMemoryManager()
	m.SetState(4, StateBookingFirstName)

	s := m.Get(4)
	s.State = StateBroadcastText

	if m.GetState(4) != StateBookingFirstName {
		t.Fatal("mutating the returned session changed the store")
	}
}

func TestAcquireSerializesOneUser(t *testing.T) {
	m := NewMemoryManager()

	const workers = 20
	const steps = 50
	counter := 0

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < steps; j++ {
				release := m.Acquire(1)
				counter++
				release()
			}
		}()
	}
	wg.Wait()

	if counter != workers*steps {
		t.Fatalf("counter = %d, want %d", counter, workers*steps)
	}
}

func TestBrowseWraparound(t *testing.T) {
	b := &BrowseState{Categories: []string{"lux", "standard", "suite"}}

	b.Prev()
	if b.Current() != "suite" {
		t.Fatalf("prev from first = %q, want suite", b.Current())
	}
	b.Next()
	if b.Current() != "lux" {
		t.Fatalf("next wrap = %q, want lux", b.Current())
	}

	for i := 0; i < 3; i++ {
		b.Next()
	}
	if b.Current() != "lux" {
		t.Fatalf("full cycle = %q, want lux", b.Current())
	}
}

func TestBrowseSingleCategory(t *testing.T) {
	b := &BrowseState{Categories: []string{"lux"}}
	b.Next()
	if b.Current() != "lux" {
		t.Fatalf("next on single category = %q", b.Current())
	}
	b.Prev()
	if b.Current() != "lux" {
		t.Fatalf("prev on single category = %q", b.Current())
	}
}
