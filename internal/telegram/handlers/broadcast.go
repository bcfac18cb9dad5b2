package handlers

import (
	"fmt"
	"strings"

	"github.com/m3rciful/hotelbot/internal/telegram/keyboard"
	"github.com/m3rciful/hotelbot/internal/telegram/state"

	tele "gopkg.in/telebot.v4"
)

// StartBroadcast opens the announcement dialog.
func (h *Handlers) StartBroadcast(c tele.Context) error {
	h.Store.SetState(c.Sender().ID, state.StateBroadcastText)
	return c.Send("Send the announcement text:")
}

// broadcastText captures the announcement and asks for confirmation.
// Nothing is sent until the admin presses the confirm button.
func (h *Handlers) broadcastText(c tele.Context, _ state.Session) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())
	if text == "" {
		return c.Send("The announcement is empty. Send the text:")
	}
	h.Store.Update(userID, func(s *state.Session) {
		s.BroadcastText = text
		s.State = state.StateIdle
	})
	return c.Send(
		fmt.Sprintf("Send this to all users?\n\n%s", text),
		keyboard.Inline([]keyboard.Btn{
			{Text: "Send", Data: "start_broadcast"},
			{Text: "Cancel", Data: "back_to_admin"},
		}),
	)
}

// ConfirmBroadcast fans the pending announcement out and reports the
// tally. The pending text is consumed whatever the outcome.
func (h *Handlers) ConfirmBroadcast(c tele.Context) error {
	ctx := reqCtx(c)
	userID := c.Sender().ID
	session := h.Store.Get(userID)
	text := session.BroadcastText
	h.Store.Clear(userID)
	if text == "" {
		return c.Send("There is no pending announcement.")
	}

	result, err := h.Notify.Broadcast(ctx, text)
	if err != nil && result.Sent == 0 && result.Failed == 0 {
		return h.fail(c)
	}
	return c.Send(fmt.Sprintf("Broadcast done: %d sent, %d failed.", result.Sent, result.Failed))
}
