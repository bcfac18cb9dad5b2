package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m3rciful/hotelbot/internal/logger"
	"github.com/m3rciful/hotelbot/internal/model"
	"github.com/m3rciful/hotelbot/internal/repository"
	"github.com/m3rciful/hotelbot/internal/telegram/keyboard"
	"github.com/m3rciful/hotelbot/internal/telegram/state"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// StartBooking enters the booking dialog for a room picked in the
// browser. The pager page is retired so its buttons cannot fire again
// mid-dialog.
func (h *Handlers) StartBooking(c tele.Context, roomID int64) error {
	ctx := reqCtx(c)
	userID := c.Sender().ID

	room, err := h.Rooms.GetByID(ctx, roomID)
	if errors.Is(err, repository.ErrNotFound) {
		return c.Send(msgInvalidRequest)
	}
	if err != nil {
		return h.fail(c)
	}
	if room.Status != model.RoomStatusAvailable || room.Quantity <= 0 {
		return c.Send("This room is no longer available.")
	}

	h.retirePage(c)
	h.Store.Update(userID, func(s *state.Session) {
		s.Booking = &state.BookingDraft{RoomID: roomID}
		s.State = state.StateBookingFirstName
	})
	return c.Send("Enter your first name:")
}

// bookingText advances the booking dialog one step. Invalid input
// re-prompts the same state without advancing.
func (h *Handlers) bookingText(c tele.Context, session state.Session) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())
	draft := session.Booking
	if draft == nil {
		// Draft lost (restart mid-dialog); abort cleanly.
		h.Store.Clear(userID)
		return c.Send(msgInvalidRequest)
	}

	switch session.State {
	case state.StateBookingFirstName:
		if !validName(text) {
			return c.Send("Please use letters only. Enter your first name:")
		}
		h.Store.Update(userID, func(s *state.Session) {
			s.Booking.FirstName = text
			s.State = state.StateBookingLastName
		})
		return c.Send("Enter your last name:")

	case state.StateBookingLastName:
		if !validName(text) {
			return c.Send("Please use letters only. Enter your last name:")
		}
		h.Store.Update(userID, func(s *state.Session) {
			s.Booking.LastName = text
			s.State = state.StateBookingEmail
		})
		return c.Send("Enter your email:", keyboard.Skip("skip_email"))

	case state.StateBookingEmail:
		if !h.validEmail(text) {
			return c.Send("That does not look like an email. Try again:", keyboard.Skip("skip_email"))
		}
		h.Store.Update(userID, func(s *state.Session) {
			s.Booking.Email = &text
			s.State = state.StateBookingPhone
		})
		return c.Send("Enter your phone number:", keyboard.Skip("skip_phone"))

	case state.StateBookingPhone:
		if !validPhone(text) {
			return c.Send("That does not look like a phone number. Try again:", keyboard.Skip("skip_phone"))
		}
		h.Store.Update(userID, func(s *state.Session) {
			s.Booking.Phone = &text
			s.State = state.StateBookingCheckIn
		})
		return c.Send("Enter the check-in date (YYYY-MM-DD):")

	case state.StateBookingCheckIn:
		checkIn, ok := parseDate(text)
		if !ok || !validCheckIn(checkIn, time.Now()) {
			return c.Send("Check-in must be a date between today and one year ahead. Try again:")
		}
		h.Store.Update(userID, func(s *state.Session) {
			s.Booking.CheckIn = checkIn
			s.State = state.StateBookingCheckOut
		})
		return c.Send("Enter the check-out date (YYYY-MM-DD):")

	case state.StateBookingCheckOut:
		checkOut, ok := parseDate(text)
		if !ok || !validCheckOut(draft.CheckIn, checkOut, time.Now()) {
			return c.Send("Check-out must be after check-in and within one year. Try again:")
		}
		h.Store.Update(userID, func(s *state.Session) {
			s.Booking.CheckOut = checkOut
			s.State = state.StateBookingComment
		})
		return c.Send("Any comment for us?", keyboard.Skip("skip_comment"))

	case state.StateBookingComment:
		h.Store.Update(userID, func(s *state.Session) {
			s.Booking.Comment = &text
		})
		return h.finalizeBooking(c)
	}

	return nil
}

// SkipBookingField advances past an optional field, storing it as
// absent. A skip arriving in the wrong state is acknowledged and
// ignored.
func (h *Handlers) SkipBookingField(c tele.Context, field string) error {
	userID := c.Sender().ID
	session := h.Store.Get(userID)
	if session.Booking == nil {
		return nil
	}

	switch {
	case field == "email" && session.State == state.StateBookingEmail:
		h.Store.Update(userID, func(s *state.Session) {
			s.State = state.StateBookingPhone
		})
		return c.Send("Enter your phone number:", keyboard.Skip("skip_phone"))
	case field == "phone" && session.State == state.StateBookingPhone:
		h.Store.Update(userID, func(s *state.Session) {
			s.State = state.StateBookingCheckIn
		})
		return c.Send("Enter the check-in date (YYYY-MM-DD):")
	case field == "comment" && session.State == state.StateBookingComment:
		return h.finalizeBooking(c)
	}
	return nil
}

// finalizeBooking performs the atomic reservation: the room counter
// decrement and the guest insert either both persist or neither does.
// This is a terminal step, so the session is cleared on every outcome.
func (h *Handlers) finalizeBooking(c tele.Context) error {
	ctx := reqCtx(c)
	userID := c.Sender().ID
	session := h.Store.Get(userID)
	draft := session.Booking
	if draft == nil {
		h.Store.Clear(userID)
		return c.Send(msgInvalidRequest)
	}

	guest := &model.Guest{
		RoomID:       draft.RoomID,
		UserID:       userID,
		FirstName:    draft.FirstName,
		LastName:     draft.LastName,
		Email:        draft.Email,
		Phone:        draft.Phone,
		CheckInDate:  draft.CheckIn,
		CheckOutDate: draft.CheckOut,
		Comment:      draft.Comment,
	}

	guestID, err := h.Reserver.Reserve(ctx, guest)
	h.Store.Clear(userID)

	if errors.Is(err, repository.ErrRoomUnavailable) {
		return c.Send("Sorry, this room has just been fully booked.")
	}
	if err != nil {
		logger.TG.Error("reservation failed",
			slog.String("event", "booking.finalize"),
			slog.Int64("user_id", userID),
			slog.Int64("room_id", draft.RoomID),
			slog.String("err", err.Error()),
		)
		return h.fail(c)
	}

	summary := fmt.Sprintf(
		"Booking #%d confirmed!\nRoom: %d\nGuest: %s %s\nCheck-in: %s\nCheck-out: %s",
		guestID, draft.RoomID, draft.FirstName, draft.LastName,
		draft.CheckIn.Format("2006-01-02"), draft.CheckOut.Format("2006-01-02"),
	)
	if draft.Email != nil {
		summary += "\nEmail: " + *draft.Email
	}
	if draft.Phone != nil {
		summary += "\nPhone: " + *draft.Phone
	}
	if draft.Comment != nil && *draft.Comment != "" {
		summary += "\nComment: " + *draft.Comment
	}
	return c.Send(summary)
}
