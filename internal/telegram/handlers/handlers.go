// Package handlers implements the conversation flows: registration,
// category browsing, the booking dialog, service orders, admin CRUD,
// and announcements.
package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/m3rciful/hotelbot/internal/broadcast"
	"github.com/m3rciful/hotelbot/internal/model"
	"github.com/m3rciful/hotelbot/internal/repository"
	"github.com/m3rciful/hotelbot/internal/telegram/middleware"
	"github.com/m3rciful/hotelbot/internal/telegram/state"

	tele "gopkg.in/telebot.v4"
)

// Catalog is the read surface the category browser needs.
type Catalog interface {
	AvailableCategories(ctx context.Context) ([]string, error)
	AvailableByCategory(ctx context.Context, category string) ([]model.Room, error)
	Images(ctx context.Context, roomID int64) ([]model.RoomImage, error)
}

// Reserver performs the atomic reservation write.
type Reserver interface {
	Reserve(ctx context.Context, guest *model.Guest) (int64, error)
}

// Broadcaster fans an announcement out to every known user.
type Broadcaster interface {
	Broadcast(ctx context.Context, text string) (broadcast.Result, error)
}

// AlbumPhoto is one image of a browser page; the lead photo carries the
// caption.
type AlbumPhoto struct {
	URL     string
	Caption string
}

// Deliverer is the outbound surface used by the browser. Delete is
// best-effort: the pager tolerates individual failures.
type Deliverer interface {
	SendAlbum(chatID int64, photos []AlbumPhoto) ([]int, error)
	SendText(chatID int64, text string, markup *tele.ReplyMarkup) (int, error)
	Delete(chatID int64, messageID int) error
}

// Handlers owns the conversation logic. It carries every collaborator
// explicitly; there are no process-wide singletons.
type Handlers struct {
	Store    state.Manager
	Catalog  Catalog
	Reserver Reserver
	Notify   Broadcaster
	Deliver  Deliverer

	Users    *repository.UserRepository
	Rooms    *repository.RoomRepository
	Guests   *repository.GuestRepository
	Services *repository.ServiceRepository

	validate *validator.Validate
	admin    map[string]adminEntity
}

// New wires the handler set.
func New(store state.Manager, deliver Deliverer, users *repository.UserRepository,
	rooms *repository.RoomRepository, guests *repository.GuestRepository,
	services *repository.ServiceRepository, notify Broadcaster) *Handlers {

	h := &Handlers{
		Store:    store,
		Catalog:  rooms,
		Reserver: guests,
		Notify:   notify,
		Deliver:  deliver,
		Users:    users,
		Rooms:    rooms,
		Guests:   guests,
		Services: services,
		validate: validator.New(),
	}
	h.admin = h.adminEntities()
	return h
}

// IsAdmin implements middleware.AdminChecker against the users table.
func (h *Handlers) IsAdmin(userID int64) bool {
	isAdmin, err := h.Users.IsAdmin(context.Background(), userID)
	if err != nil {
		return false
	}
	return isAdmin
}

var _ middleware.AdminChecker = (*Handlers)(nil)

const (
	msgGenericFailure = "Something went wrong, please try again later."
	msgInvalidRequest = "Invalid request."
	msgNoPermission   = "You are not allowed to do that."
)

// failCtx reports a store failure to the user without touching session
// state; the caller decides whether the flow is terminal.
func (h *Handlers) fail(c tele.Context) error {
	return c.Send(msgGenericFailure)
}

func reqCtx(c tele.Context) context.Context {
	return middleware.BuildContext(c)
}
