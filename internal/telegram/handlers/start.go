package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m3rciful/hotelbot/internal/logger"
	"github.com/m3rciful/hotelbot/internal/model"
	"github.com/m3rciful/hotelbot/internal/repository"
	"github.com/m3rciful/hotelbot/internal/telegram/keyboard"
	"github.com/m3rciful/hotelbot/internal/telegram/state"

	tele "gopkg.in/telebot.v4"
)

// Start registers the sender on first contact and greets them. Known
// users are greeted by the name they registered with; both get the
// entry button into the room browser.
func (h *Handlers) Start(c tele.Context) error {
	ctx := reqCtx(c)
	sender := c.Sender()

	known, err := h.Users.GetByTelegramID(ctx, sender.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return h.fail(c)
	}
	if known == nil {
		user := &model.User{
			TelegramID: sender.ID,
			FirstName:  sender.FirstName,
			LastName:   sender.LastName,
			Username:   sender.Username,
		}
		if err := h.Users.Create(ctx, user); err != nil {
			return h.fail(c)
		}
		logger.TG.Info("user registered", "user_id", sender.ID)
	}

	// A fresh /start abandons whatever dialog was in flight.
	h.Store.Clear(sender.ID)

	greeting := fmt.Sprintf("Hello, %s! I can help you book a room and order extra services.", sender.FirstName)
	if known != nil {
		greeting = fmt.Sprintf("Welcome back, %s!", known.FirstName)
	}
	return c.Send(greeting, keyboard.Inline([]keyboard.Btn{
		{Text: "Show rooms", Data: "show_rooms"},
		{Text: "Services", Data: "show_services"},
	}))
}

// MyBookings lists the sender's bookings with any service orders
// attached to each. The booking number shown here is what the service
// order dialog asks for.
func (h *Handlers) MyBookings(c tele.Context) error {
	ctx := reqCtx(c)
	userID := c.Sender().ID

	guests, err := h.Guests.ListByUser(ctx, userID)
	if err != nil {
		return h.fail(c)
	}
	if len(guests) == 0 {
		return c.Send("You have no bookings yet. Use /rooms to find one.")
	}

	var sb strings.Builder
	sb.WriteString("Your bookings:\n")
	for _, g := range guests {
		fmt.Fprintf(&sb, "\n#%d: room %d, %s to %s\n",
			g.ID, g.RoomID,
			g.CheckInDate.Format("2006-01-02"), g.CheckOutDate.Format("2006-01-02"))

		orders, err := h.Services.OrdersByGuest(ctx, g.ID)
		if err != nil {
			return h.fail(c)
		}
		for _, o := range orders {
			fmt.Fprintf(&sb, "  service %d x%d (%s)\n", o.ServiceID, o.Quantity, o.Status)
		}
	}
	return c.Send(sb.String())
}

// Back returns to the admin panel from a sub-menu, dropping any
// in-flight admin dialog.
func (h *Handlers) Back(c tele.Context) error {
	h.Store.Clear(c.Sender().ID)
	return h.AdminPanel(c)
}

// HandleText routes a plain message to whichever dialog is waiting for
// it. Text arriving with no dialog in flight is answered with a hint
// instead of being dropped silently.
func (h *Handlers) HandleText(c tele.Context) error {
	session := h.Store.Get(c.Sender().ID)

	switch session.State {
	case state.StateBookingFirstName, state.StateBookingLastName, state.StateBookingEmail,
		state.StateBookingPhone, state.StateBookingCheckIn, state.StateBookingCheckOut,
		state.StateBookingComment:
		return h.bookingText(c, session)

	case state.StateOrderGuestID, state.StateOrderQuantity:
		return h.orderText(c, session)

	case state.StateAdminAdd, state.StateAdminEditText, state.StateAdminPickID,
		state.StateAdminEditValue, state.StateAdminDeleteID:
		return h.adminText(c, session)

	case state.StateBroadcastText:
		return h.broadcastText(c, session)
	}

	return c.Send("Use /start to begin or /rooms to browse available rooms.")
}
