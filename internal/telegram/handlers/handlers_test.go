package handlers

import (
	"context"
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/m3rciful/hotelbot/internal/model"
	"github.com/m3rciful/hotelbot/internal/repository"
	"github.com/m3rciful/hotelbot/internal/telegram/state"

	tele "gopkg.in/telebot.v4"
)

// testContext implements the slice of tele.Context the handlers touch.
// The embedded interface covers the rest; a handler reaching for an
// unimplemented method fails the test loudly.
type testContext struct {
	tele.Context

	user *tele.User
	chat *tele.Chat
	text string

	mu    sync.Mutex
	sent  []string
	store map[string]any
}

func newTestContext(userID int64) *testContext {
	return &testContext{
		user:  &tele.User{ID: userID, FirstName: "Test"},
		chat:  &tele.Chat{ID: userID},
		store: make(map[string]any),
	}
}

func (c *testContext) Sender() *tele.User  { return c.user }
func (c *testContext) Chat() *tele.Chat    { return c.chat }
func (c *testContext) Text() string        { return c.text }
func (c *testContext) Update() tele.Update { return tele.Update{ID: 1} }

func (c *testContext) Get(key string) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store[key]
}

func (c *testContext) Set(key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = v
}

func (c *testContext) Send(what any, _ ...any) error {
	if s, ok := what.(string); ok {
		c.mu.Lock()
		c.sent = append(c.sent, s)
		c.mu.Unlock()
	}
	return nil
}

func (c *testContext) lastSent() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.sent) == 0 {
		return ""
	}
	return c.sent[len(c.sent)-1]
}

// fakeCatalog serves a fixed category/room/image set.
type fakeCatalog struct {
	categories []string
	rooms      map[string][]model.Room
	images     map[int64][]model.RoomImage
}

func (f *fakeCatalog) AvailableCategories(ctx context.Context) ([]string, error) {
	return f.categories, nil
}

func (f *fakeCatalog) AvailableByCategory(ctx context.Context, category string) ([]model.Room, error) {
	return f.rooms[category], nil
}

func (f *fakeCatalog) Images(ctx context.Context, roomID int64) ([]model.RoomImage, error) {
	return f.images[roomID], nil
}

// op records one outbound call in arrival order, so tests can assert
// that page retirement strictly precedes the new render.
type op struct {
	kind  string // "delete", "album", "text"
	msgID int
}

type fakeDeliverer struct {
	mu         sync.Mutex
	ops        []op
	nextID     int
	failDelete bool
}

func (f *fakeDeliverer) SendAlbum(chatID int64, photos []AlbumPhoto) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int, 0, len(photos))
	for range photos {
		f.nextID++
		ids = append(ids, f.nextID)
		f.ops = append(f.ops, op{kind: "album", msgID: f.nextID})
	}
	return ids, nil
}

func (f *fakeDeliverer) SendText(chatID int64, text string, markup *tele.ReplyMarkup) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.ops = append(f.ops, op{kind: "text", msgID: f.nextID})
	return f.nextID, nil
}

func (f *fakeDeliverer) Delete(chatID int64, messageID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, op{kind: "delete", msgID: messageID})
	if f.failDelete {
		return errAlreadyGone
	}
	return nil
}

var errAlreadyGone = errors.New("message to delete not found")

// fakeReserver simulates the inventory CAS against an in-memory counter.
type fakeReserver struct {
	mu       sync.Mutex
	quantity map[int64]int
	created  []model.Guest
	nextID   int64
}

func (f *fakeReserver) Reserve(ctx context.Context, guest *model.Guest) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.quantity[guest.RoomID] <= 0 {
		return 0, repository.ErrRoomUnavailable
	}
	f.quantity[guest.RoomID]--
	f.nextID++
	f.created = append(f.created, *guest)
	return f.nextID, nil
}

func newBookingHandlers(deliver Deliverer, catalog Catalog, reserve Reserver) *Handlers {
	h := &Handlers{
		Store:    state.NewMemoryManager(),
		Catalog:  catalog,
		Reserver: reserve,
		Deliver:  deliver,
		validate: validator.New(),
	}
	h.admin = h.adminEntities()
	return h
}
