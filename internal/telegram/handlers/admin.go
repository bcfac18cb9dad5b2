package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m3rciful/hotelbot/internal/repository"
	"github.com/m3rciful/hotelbot/internal/telegram/action"
	"github.com/m3rciful/hotelbot/internal/telegram/keyboard"
	"github.com/m3rciful/hotelbot/internal/telegram/state"

	tele "gopkg.in/telebot.v4"
)

// adminEntity describes one table managed through the admin panel.
// Fields is the column whitelist offered in edit-by-menu dialogs; an
// entity without fields gets no edit buttons.
type adminEntity struct {
	name    string
	title   string
	addHint string
	fields  []string

	add         func(ctx context.Context, payload string) (string, error)
	list        func(ctx context.Context) (string, []keyboard.Btn, error)
	updateField func(ctx context.Context, id int64, field, value string) error
	del         func(ctx context.Context, id int64) error
}

func (h *Handlers) adminEntities() map[string]adminEntity {
	return map[string]adminEntity{
		action.EntityUser: {
			name:    action.EntityUser,
			title:   "Users",
			addHint: "telegram_id;first_name;last_name;username",
			fields:  []string{"first_name", "last_name", "username", "admin"},
			add:     h.addUser,
			list:    h.listUsers,
			updateField: func(ctx context.Context, id int64, field, value string) error {
				// "admin" flips the privilege flag; the other fields are
				// plain column writes.
				if field == "admin" {
					isAdmin, err := strconv.ParseBool(strings.TrimSpace(value))
					if err != nil {
						return fmt.Errorf("admin flag: expected true or false: %w", err)
					}
					return h.Users.SetAdmin(ctx, id, isAdmin)
				}
				return h.Users.UpdateField(ctx, id, field, value)
			},
			del: h.Users.Delete,
		},
		action.EntityRoom: {
			name:    action.EntityRoom,
			title:   "Rooms",
			addHint: "category;description;price;quantity;status",
			fields:  []string{"category", "description", "price", "quantity", "status"},
			add:     h.addRoom,
			list:    h.listRooms,
			updateField: func(ctx context.Context, id int64, field, value string) error {
				return h.Rooms.UpdateField(ctx, id, field, value)
			},
			del: h.Rooms.Delete,
		},
		action.EntityImage: {
			name:    action.EntityImage,
			title:   "Room images",
			addHint: "room_id;image_url",
			add:     h.addImage,
			list:    h.listImages,
			del:     h.Rooms.DeleteImage,
		},
		action.EntityGuest: {
			name:    action.EntityGuest,
			title:   "Guests",
			addHint: "room_id;user_id;first_name;last_name;check_in;check_out",
			fields:  []string{"first_name", "last_name", "email", "phone", "comment"},
			add:     h.addGuest,
			list:    h.listGuests,
			updateField: func(ctx context.Context, id int64, field, value string) error {
				return h.Guests.UpdateField(ctx, id, field, value)
			},
			del: h.Guests.Delete,
		},
		action.EntityService: {
			name:    action.EntityService,
			title:   "Services",
			addHint: "name;price;short_description;detailed_description",
			fields:  []string{"name", "price", "short_description", "detailed_description"},
			add:     h.addService,
			list:    h.listServices,
			updateField: func(ctx context.Context, id int64, field, value string) error {
				return h.Services.UpdateField(ctx, id, field, value)
			},
			del: h.Services.Delete,
		},
		action.EntityOrder: {
			name:    action.EntityOrder,
			title:   "Service orders",
			addHint: "guest_id;service_id;quantity",
			add:     h.addOrder,
			list:    h.listOrders,
		},
	}
}

// AdminPanel shows the entity menu. Callers are already admin-gated.
func (h *Handlers) AdminPanel(c tele.Context) error {
	buttons := []keyboard.Btn{
		{Text: "Users", Data: "db_user"},
		{Text: "Rooms", Data: "db_room"},
		{Text: "Room images", Data: "db_image"},
		{Text: "Guests", Data: "db_guest"},
		{Text: "Services", Data: "db_service"},
		{Text: "Service orders", Data: "db_gs"},
		{Text: "Broadcast", Data: "broadcast"},
	}
	return c.Send("Admin panel:", keyboard.InlineNPerRow(buttons, 2))
}

// ShowEntity lists the entity's records and the operations available
// on it.
func (h *Handlers) ShowEntity(c tele.Context, entityName string) error {
	ctx := reqCtx(c)
	entity, ok := h.admin[entityName]
	if !ok {
		return c.Send(msgInvalidRequest)
	}

	text, extra, err := entity.list(ctx)
	if err != nil {
		return h.fail(c)
	}
	if text == "" {
		text = entity.title + ": no records."
	}

	ops := []keyboard.Btn{
		{Text: "Add", Data: "add_" + entity.name},
	}
	if len(entity.fields) > 0 {
		ops = append(ops,
			keyboard.Btn{Text: "Edit (text)", Data: "edit_" + entity.name + "_text"},
			keyboard.Btn{Text: "Edit (menu)", Data: "edit_" + entity.name + "_gui"},
		)
	}
	if entity.del != nil {
		ops = append(ops, keyboard.Btn{Text: "Delete", Data: "delete_" + entity.name + "_menu"})
	}
	ops = append(ops, keyboard.Btn{Text: "Back", Data: "back_to_admin"})

	rows := [][]keyboard.Btn{}
	for _, b := range extra {
		rows = append(rows, []keyboard.Btn{b})
	}
	rows = append(rows, ops)
	return c.Send(text, keyboard.Inline(rows...))
}

// StartAdminAdd begins an add dialog: one message with the fields
// separated by semicolons.
func (h *Handlers) StartAdminAdd(c tele.Context, entityName string) error {
	entity, ok := h.admin[entityName]
	if !ok || entity.add == nil {
		return c.Send(msgInvalidRequest)
	}
	userID := c.Sender().ID
	h.Store.Update(userID, func(s *state.Session) {
		s.Admin = &state.AdminDraft{Entity: entityName}
		s.State = state.StateAdminAdd
	})
	return c.Send(fmt.Sprintf("Send the new record as:\n%s", entity.addHint))
}

// StartAdminEditText begins a one-shot edit: "id;field;value".
func (h *Handlers) StartAdminEditText(c tele.Context, entityName string) error {
	entity, ok := h.admin[entityName]
	if !ok || entity.updateField == nil {
		return c.Send(msgInvalidRequest)
	}
	userID := c.Sender().ID
	h.Store.Update(userID, func(s *state.Session) {
		s.Admin = &state.AdminDraft{Entity: entityName}
		s.State = state.StateAdminEditText
	})
	return c.Send(fmt.Sprintf("Send the edit as: id;field;value\nFields: %s",
		strings.Join(entity.fields, ", ")))
}

// StartAdminEditMenu begins the two-phase edit: pick the record id,
// then pick a field button, then send the new value.
func (h *Handlers) StartAdminEditMenu(c tele.Context, entityName string) error {
	entity, ok := h.admin[entityName]
	if !ok || entity.updateField == nil {
		return c.Send(msgInvalidRequest)
	}
	userID := c.Sender().ID
	h.Store.Update(userID, func(s *state.Session) {
		s.Admin = &state.AdminDraft{Entity: entityName}
		s.State = state.StateAdminPickID
	})
	return c.Send("Enter the record id to edit:")
}

// StartAdminDelete asks for the id of the record to remove.
func (h *Handlers) StartAdminDelete(c tele.Context, entityName string) error {
	entity, ok := h.admin[entityName]
	if !ok || entity.del == nil {
		return c.Send(msgInvalidRequest)
	}
	userID := c.Sender().ID
	h.Store.Update(userID, func(s *state.Session) {
		s.Admin = &state.AdminDraft{Entity: entityName}
		s.State = state.StateAdminDeleteID
	})
	return c.Send("Enter the record id to delete:")
}

// AdminDeleteByID removes a record addressed directly in the callback
// token, without a dialog.
func (h *Handlers) AdminDeleteByID(c tele.Context, entityName string, id int64) error {
	ctx := reqCtx(c)
	entity, ok := h.admin[entityName]
	if !ok || entity.del == nil {
		return c.Send(msgInvalidRequest)
	}
	return h.reportDelete(c, entity.del(ctx, id), id)
}

// PickAdminField selects the column in an edit-by-menu dialog. The
// target id must already be captured.
func (h *Handlers) PickAdminField(c tele.Context, entityName, field string) error {
	userID := c.Sender().ID
	session := h.Store.Get(userID)
	draft := session.Admin
	if draft == nil || draft.Entity != entityName || draft.TargetID == 0 {
		return c.Send(msgInvalidRequest)
	}
	entity := h.admin[entityName]
	if !contains(entity.fields, field) {
		return c.Send(msgInvalidRequest)
	}
	h.Store.Update(userID, func(s *state.Session) {
		s.Admin.Field = field
		s.State = state.StateAdminEditValue
	})
	return c.Send(fmt.Sprintf("Send the new value for %s:", field))
}

// StartOrderEdit opens the quantity dialog for one order line addressed
// by its composite identity. Sending "delete" removes the line instead.
func (h *Handlers) StartOrderEdit(c tele.Context, guestID, serviceID int64, orderDate time.Time) error {
	userID := c.Sender().ID
	h.Store.Update(userID, func(s *state.Session) {
		s.Admin = &state.AdminDraft{
			Entity:    action.EntityOrder,
			GuestID:   guestID,
			ServiceID: serviceID,
			OrderDate: orderDate,
		}
		s.State = state.StateAdminEditValue
	})
	return c.Send("Send the new quantity, or 'delete' to remove the order line:")
}

// adminText advances whichever admin dialog is active.
func (h *Handlers) adminText(c tele.Context, session state.Session) error {
	ctx := reqCtx(c)
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())
	draft := session.Admin
	if draft == nil {
		h.Store.Clear(userID)
		return c.Send(msgInvalidRequest)
	}
	entity, ok := h.admin[draft.Entity]
	if !ok {
		h.Store.Clear(userID)
		return c.Send(msgInvalidRequest)
	}

	switch session.State {
	case state.StateAdminAdd:
		// Single-shot: the session is cleared on every outcome so a
		// store failure cannot leave the dialog stuck.
		result, err := entity.add(ctx, text)
		h.Store.Clear(userID)
		if err != nil {
			return c.Send("Could not add the record: " + err.Error())
		}
		return c.Send(result)

	case state.StateAdminEditText:
		parts := strings.SplitN(text, ";", 3)
		if len(parts) != 3 {
			return c.Send("Expected id;field;value. Try again:")
		}
		id, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
		if err != nil || id <= 0 {
			return c.Send("The id must be a positive number. Try again:")
		}
		field := strings.TrimSpace(parts[1])
		if !contains(entity.fields, field) {
			return c.Send(fmt.Sprintf("Unknown field %q. Fields: %s", field, strings.Join(entity.fields, ", ")))
		}
		err = entity.updateField(ctx, id, field, strings.TrimSpace(parts[2]))
		h.Store.Clear(userID)
		return h.reportUpdate(c, err, id)

	case state.StateAdminPickID:
		id, err := strconv.ParseInt(text, 10, 64)
		if err != nil || id <= 0 {
			return c.Send("The id must be a positive number. Try again:")
		}
		h.Store.Update(userID, func(s *state.Session) {
			s.Admin.TargetID = id
		})
		var buttons []keyboard.Btn
		for _, field := range entity.fields {
			buttons = append(buttons, keyboard.Btn{
				Text: field,
				Data: fmt.Sprintf("field_%s_%s", entity.name, field),
			})
		}
		return c.Send("Pick the field to change:", keyboard.InlineNPerRow(buttons, 2))

	case state.StateAdminEditValue:
		if draft.Entity == action.EntityOrder {
			return h.applyOrderEdit(c, draft, text)
		}
		err := entity.updateField(ctx, draft.TargetID, draft.Field, text)
		h.Store.Clear(userID)
		return h.reportUpdate(c, err, draft.TargetID)

	case state.StateAdminDeleteID:
		id, err := strconv.ParseInt(text, 10, 64)
		if err != nil || id <= 0 {
			return c.Send("The id must be a positive number. Try again:")
		}
		delErr := entity.del(ctx, id)
		h.Store.Clear(userID)
		return h.reportDelete(c, delErr, id)
	}

	return nil
}

func (h *Handlers) applyOrderEdit(c tele.Context, draft *state.AdminDraft, text string) error {
	ctx := reqCtx(c)
	userID := c.Sender().ID

	if strings.EqualFold(text, "delete") {
		h.Store.Clear(userID)
		err := h.Services.DeleteOrder(ctx, draft.GuestID, draft.ServiceID, draft.OrderDate)
		if errors.Is(err, repository.ErrNotFound) {
			return c.Send("Nothing changed: no such order line.")
		}
		if err != nil {
			return h.fail(c)
		}
		return c.Send("Order line removed.")
	}

	quantity, err := strconv.Atoi(text)
	if err != nil || quantity <= 0 {
		// Re-prompt without leaving the dialog; only a store attempt
		// clears the session.
		return c.Send("Expected a positive number or 'delete'.")
	}
	h.Store.Clear(userID)
	err = h.Services.UpdateOrderQuantity(ctx, draft.GuestID, draft.ServiceID, draft.OrderDate, quantity)
	if errors.Is(err, repository.ErrNotFound) {
		return c.Send("Nothing changed: no such order line.")
	}
	if err != nil {
		return h.fail(c)
	}
	return c.Send("Order line updated.")
}

// reportUpdate tells apart a real edit from a write that matched no
// row, so stale ids do not masquerade as success.
func (h *Handlers) reportUpdate(c tele.Context, err error, id int64) error {
	if errors.Is(err, repository.ErrNotFound) {
		return c.Send(fmt.Sprintf("Nothing changed: record %d not found.", id))
	}
	if err != nil {
		return h.fail(c)
	}
	return c.Send(fmt.Sprintf("Record %d updated.", id))
}

func (h *Handlers) reportDelete(c tele.Context, err error, id int64) error {
	if errors.Is(err, repository.ErrNotFound) {
		return c.Send(fmt.Sprintf("Nothing changed: record %d not found.", id))
	}
	if err != nil {
		return h.fail(c)
	}
	return c.Send(fmt.Sprintf("Record %d deleted.", id))
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
