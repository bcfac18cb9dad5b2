package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/m3rciful/hotelbot/internal/model"
	"github.com/m3rciful/hotelbot/internal/telegram/action"
	"github.com/m3rciful/hotelbot/internal/telegram/keyboard"
)

// splitPayload cuts an add payload into exactly want fields, trimming
// whitespace around each.
func splitPayload(payload string, want int) ([]string, error) {
	parts := strings.Split(payload, ";")
	if len(parts) != want {
		return nil, fmt.Errorf("expected %d fields separated by ';', got %d", want, len(parts))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}

func parsePositiveID(s, what string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive number, got %q", what, s)
	}
	return id, nil
}

func (h *Handlers) addUser(ctx context.Context, payload string) (string, error) {
	parts, err := splitPayload(payload, 4)
	if err != nil {
		return "", err
	}
	telegramID, err := parsePositiveID(parts[0], "telegram_id")
	if err != nil {
		return "", err
	}
	user := &model.User{
		TelegramID: telegramID,
		FirstName:  parts[1],
		LastName:   parts[2],
		Username:   parts[3],
	}
	if err := h.Users.Create(ctx, user); err != nil {
		return "", err
	}
	return fmt.Sprintf("User %d added.", telegramID), nil
}

func (h *Handlers) listUsers(ctx context.Context) (string, []keyboard.Btn, error) {
	users, err := h.Users.ListAll(ctx)
	if err != nil {
		return "", nil, err
	}
	var b strings.Builder
	for _, u := range users {
		role := ""
		if u.IsAdmin {
			role = " [admin]"
		}
		fmt.Fprintf(&b, "%d: %s %s @%s%s\n", u.TelegramID, u.FirstName, u.LastName, u.Username, role)
	}
	return b.String(), nil, nil
}

func (h *Handlers) addRoom(ctx context.Context, payload string) (string, error) {
	parts, err := splitPayload(payload, 5)
	if err != nil {
		return "", err
	}
	price, err := strconv.ParseFloat(parts[2], 64)
	if err != nil || price < 0 {
		return "", fmt.Errorf("price must be a non-negative number, got %q", parts[2])
	}
	quantity, err := strconv.Atoi(parts[3])
	if err != nil || quantity < 0 {
		return "", fmt.Errorf("quantity must be a non-negative number, got %q", parts[3])
	}
	status := parts[4]
	if status != model.RoomStatusAvailable && status != model.RoomStatusUnavailable {
		return "", fmt.Errorf("status must be %q or %q", model.RoomStatusAvailable, model.RoomStatusUnavailable)
	}
	id, err := h.Rooms.Create(ctx, &model.Room{
		Category:    parts[0],
		Description: parts[1],
		Price:       price,
		Quantity:    quantity,
		Status:      status,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Room %d added.", id), nil
}

func (h *Handlers) listRooms(ctx context.Context) (string, []keyboard.Btn, error) {
	rooms, err := h.Rooms.ListAll(ctx)
	if err != nil {
		return "", nil, err
	}
	var b strings.Builder
	for _, r := range rooms {
		fmt.Fprintf(&b, "%d: %s, %.2f, qty %d, %s\n", r.ID, r.Category, r.Price, r.Quantity, r.Status)
	}
	return b.String(), nil, nil
}

func (h *Handlers) addImage(ctx context.Context, payload string) (string, error) {
	parts, err := splitPayload(payload, 2)
	if err != nil {
		return "", err
	}
	roomID, err := parsePositiveID(parts[0], "room_id")
	if err != nil {
		return "", err
	}
	if parts[1] == "" {
		return "", fmt.Errorf("image_url must not be empty")
	}
	if err := h.Rooms.AddImage(ctx, roomID, parts[1]); err != nil {
		return "", err
	}
	return fmt.Sprintf("Image added to room %d.", roomID), nil
}

func (h *Handlers) listImages(ctx context.Context) (string, []keyboard.Btn, error) {
	images, err := h.Rooms.ListAllImages(ctx)
	if err != nil {
		return "", nil, err
	}
	var b strings.Builder
	for _, img := range images {
		fmt.Fprintf(&b, "%d: room %d, %s\n", img.ID, img.RoomID, img.ImageURL)
	}
	return b.String(), nil, nil
}

func (h *Handlers) addGuest(ctx context.Context, payload string) (string, error) {
	parts, err := splitPayload(payload, 6)
	if err != nil {
		return "", err
	}
	roomID, err := parsePositiveID(parts[0], "room_id")
	if err != nil {
		return "", err
	}
	userID, err := parsePositiveID(parts[1], "user_id")
	if err != nil {
		return "", err
	}
	checkIn, ok := parseDate(parts[4])
	if !ok {
		return "", fmt.Errorf("check_in %q is not a date", parts[4])
	}
	checkOut, ok := parseDate(parts[5])
	if !ok {
		return "", fmt.Errorf("check_out %q is not a date", parts[5])
	}
	if !checkOut.After(checkIn) {
		return "", fmt.Errorf("check_out must be after check_in")
	}
	id, err := h.Guests.Create(ctx, &model.Guest{
		RoomID:       roomID,
		UserID:       userID,
		FirstName:    parts[2],
		LastName:     parts[3],
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Guest %d added.", id), nil
}

func (h *Handlers) listGuests(ctx context.Context) (string, []keyboard.Btn, error) {
	guests, err := h.Guests.ListAll(ctx)
	if err != nil {
		return "", nil, err
	}
	var b strings.Builder
	for _, g := range guests {
		fmt.Fprintf(&b, "%d: %s %s, room %d, %s to %s\n",
			g.ID, g.FirstName, g.LastName, g.RoomID,
			g.CheckInDate.Format("2006-01-02"), g.CheckOutDate.Format("2006-01-02"))
	}
	return b.String(), nil, nil
}

func (h *Handlers) addService(ctx context.Context, payload string) (string, error) {
	parts, err := splitPayload(payload, 4)
	if err != nil {
		return "", err
	}
	price, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || price < 0 {
		return "", fmt.Errorf("price must be a non-negative number, got %q", parts[1])
	}
	id, err := h.Services.Create(ctx, &model.Service{
		Name:         parts[0],
		Price:        price,
		ShortDesc:    parts[2],
		DetailedDesc: parts[3],
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Service %d added.", id), nil
}

func (h *Handlers) listServices(ctx context.Context) (string, []keyboard.Btn, error) {
	services, err := h.Services.List(ctx)
	if err != nil {
		return "", nil, err
	}
	var b strings.Builder
	for _, s := range services {
		fmt.Fprintf(&b, "%d: %s, %.2f, %s\n", s.ID, s.Name, s.Price, s.ShortDesc)
	}
	return b.String(), nil, nil
}

func (h *Handlers) addOrder(ctx context.Context, payload string) (string, error) {
	parts, err := splitPayload(payload, 3)
	if err != nil {
		return "", err
	}
	guestID, err := parsePositiveID(parts[0], "guest_id")
	if err != nil {
		return "", err
	}
	serviceID, err := parsePositiveID(parts[1], "service_id")
	if err != nil {
		return "", err
	}
	quantity, err := strconv.Atoi(parts[2])
	if err != nil || quantity <= 0 {
		return "", fmt.Errorf("quantity must be a positive number, got %q", parts[2])
	}
	if _, err := h.Services.CreateOrder(ctx, guestID, serviceID, quantity); err != nil {
		return "", err
	}
	return fmt.Sprintf("Order added for guest %d.", guestID), nil
}

// listOrders renders the order lines together with one edit button per
// line; quantity edits and removals go through that button because the
// composite identity does not fit the id dialogs.
func (h *Handlers) listOrders(ctx context.Context) (string, []keyboard.Btn, error) {
	orders, err := h.Services.ListAllOrders(ctx)
	if err != nil {
		return "", nil, err
	}
	var b strings.Builder
	var buttons []keyboard.Btn
	for _, o := range orders {
		fmt.Fprintf(&b, "guest %d, service %d, qty %d, %s, %s\n",
			o.GuestID, o.ServiceID, o.Quantity, o.Status,
			o.OrderDate.Format("2006-01-02 15:04"))
		buttons = append(buttons, keyboard.Btn{
			Text: fmt.Sprintf("Edit: guest %d / service %d", o.GuestID, o.ServiceID),
			Data: fmt.Sprintf("edit_gs_%d_%d_%s", o.GuestID, o.ServiceID, action.FormatOrderDate(o.OrderDate)),
		})
	}
	return b.String(), buttons, nil
}
