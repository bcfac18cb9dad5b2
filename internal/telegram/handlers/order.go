package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/m3rciful/hotelbot/internal/repository"
	"github.com/m3rciful/hotelbot/internal/telegram/keyboard"
	"github.com/m3rciful/hotelbot/internal/telegram/state"

	tele "gopkg.in/telebot.v4"
)

// ShowServices lists the add-on catalog with one select button per
// service.
func (h *Handlers) ShowServices(c tele.Context) error {
	ctx := reqCtx(c)

	services, err := h.Services.List(ctx)
	if err != nil {
		return h.fail(c)
	}
	if len(services) == 0 {
		return c.Send("No services on offer right now.")
	}

	var sb strings.Builder
	var buttons []keyboard.Btn
	sb.WriteString("Our services:\n")
	for _, svc := range services {
		fmt.Fprintf(&sb, "\n%s - %.2f\n%s\n", svc.Name, svc.Price, svc.ShortDesc)
		buttons = append(buttons, keyboard.Btn{
			Text: svc.Name,
			Data: fmt.Sprintf("select_service_%d", svc.ID),
		})
	}
	return c.Send(sb.String(), keyboard.InlineNPerRow(buttons, 2))
}

// StartServiceOrder begins the order dialog for one catalog service.
// The guest is identified by the booking number from the confirmation
// message.
func (h *Handlers) StartServiceOrder(c tele.Context, serviceID int64) error {
	ctx := reqCtx(c)
	userID := c.Sender().ID

	service, err := h.Services.GetByID(ctx, serviceID)
	if errors.Is(err, repository.ErrNotFound) {
		return c.Send(msgInvalidRequest)
	}
	if err != nil {
		return h.fail(c)
	}

	h.Store.Update(userID, func(s *state.Session) {
		s.Order = &state.OrderDraft{ServiceID: serviceID}
		s.State = state.StateOrderGuestID
	})
	return c.Send(fmt.Sprintf("%s\n\n%s\n\nEnter your booking number:", service.Name, service.DetailedDesc))
}

// orderText advances the service order dialog.
func (h *Handlers) orderText(c tele.Context, session state.Session) error {
	ctx := reqCtx(c)
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())
	draft := session.Order
	if draft == nil {
		h.Store.Clear(userID)
		return c.Send(msgInvalidRequest)
	}

	switch session.State {
	case state.StateOrderGuestID:
		guestID, err := strconv.ParseInt(text, 10, 64)
		if err != nil || guestID <= 0 {
			return c.Send("Please enter the numeric booking number:")
		}
		guest, err := h.Guests.GetByID(ctx, guestID)
		if errors.Is(err, repository.ErrNotFound) {
			return c.Send("No such booking. Enter your booking number:")
		}
		if err != nil {
			return h.fail(c)
		}
		if guest.UserID != userID {
			// Ordering against someone else's booking is not allowed.
			return c.Send("No such booking. Enter your booking number:")
		}
		h.Store.Update(userID, func(s *state.Session) {
			s.Order.GuestID = guestID
			s.State = state.StateOrderQuantity
		})
		return c.Send("How many would you like?")

	case state.StateOrderQuantity:
		quantity, err := strconv.Atoi(text)
		if err != nil || quantity <= 0 {
			return c.Send("Please enter a positive number:")
		}
		// Terminal step: clear the session whatever the outcome.
		orderDate, err := h.Services.CreateOrder(ctx, draft.GuestID, draft.ServiceID, quantity)
		h.Store.Clear(userID)
		if err != nil {
			return h.fail(c)
		}
		return c.Send(fmt.Sprintf("Order placed at %s. We will confirm it shortly.",
			orderDate.Format("2006-01-02 15:04")))
	}

	return nil
}
