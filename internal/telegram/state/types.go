// Package state provides the per-user session store for conversation
// flows. Sessions live in process memory only and never outlive it.
package state

import "time"

// State identifies a finite-state-machine step used in conversations.
type State string

const (
	// StateIdle indicates there is no active conversation with the user.
	StateIdle State = "idle"

	// Booking flow: each state waits for one field of the draft.
	StateBookingFirstName State = "booking_first_name"
	StateBookingLastName  State = "booking_last_name"
	StateBookingEmail     State = "booking_email"
	StateBookingPhone     State = "booking_phone"
	StateBookingCheckIn   State = "booking_check_in"
	StateBookingCheckOut  State = "booking_check_out"
	StateBookingComment   State = "booking_comment"

	// Service order flow.
	StateOrderGuestID  State = "order_guest_id"
	StateOrderQuantity State = "order_quantity"

	// Admin CRUD flow; the entity and operation are carried in the
	// AdminDraft so each state is one capture step.
	StateAdminAdd       State = "admin_add"
	StateAdminEditText  State = "admin_edit_text"
	StateAdminPickID    State = "admin_pick_id"
	StateAdminEditValue State = "admin_edit_value"
	StateAdminDeleteID  State = "admin_delete_id"

	// Broadcast flow.
	StateBroadcastText State = "broadcast_text"
)

// BookingDraft accumulates the multi-step booking dialog. Optional
// fields stay nil when skipped.
type BookingDraft struct {
	RoomID    int64
	FirstName string
	LastName  string
	Email     *string
	Phone     *string
	CheckIn   time.Time
	CheckOut  time.Time
	Comment   *string
}

// BrowseState is the category browser position. The category list is
// captured once at entry and not re-queried mid-browse.
type BrowseState struct {
	Categories []string
	Index      int
}

// Prev moves the index one step back with wraparound.
func (b *BrowseState) Prev() {
	if len(b.Categories) == 0 {
		return
	}
	b.Index = (b.Index - 1 + len(b.Categories)) % len(b.Categories)
}

// Next moves the index one step forward with wraparound.
func (b *BrowseState) Next() {
	if len(b.Categories) == 0 {
		return
	}
	b.Index = (b.Index + 1) % len(b.Categories)
}

// Current returns the displayed category, or "" when the list is empty.
func (b *BrowseState) Current() string {
	if len(b.Categories) == 0 {
		return ""
	}
	return b.Categories[b.Index]
}

// AdminDraft carries the target of an in-flight admin operation.
type AdminDraft struct {
	Entity   string
	TargetID int64
	Field    string

	// Composite order identity when Entity is "gs".
	GuestID   int64
	ServiceID int64
	OrderDate time.Time
}

// OrderDraft carries an in-flight guest service order.
type OrderDraft struct {
	ServiceID int64
	GuestID   int64
}

// Session stores conversation state and flow drafts for one user.
// Exactly one session exists per user; all access goes through Manager.
type Session struct {
	State State

	Booking *BookingDraft
	Browse  *BrowseState
	Admin   *AdminDraft
	Order   *OrderDraft

	// Messages tracks the message ids of the currently rendered browser
	// page so the next render can retire them first.
	Messages []int

	// BroadcastText is the pending announcement awaiting confirmation.
	BroadcastText string
}
