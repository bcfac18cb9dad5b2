package handlers

import (
	"fmt"

	"github.com/m3rciful/hotelbot/internal/logger"
	"github.com/m3rciful/hotelbot/internal/telegram/keyboard"
	"github.com/m3rciful/hotelbot/internal/telegram/state"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// EnterBrowser captures the categories that currently have bookable
// units and renders the first page. The list is fixed for the whole
// browse; it is not re-queried on prev/next.
func (h *Handlers) EnterBrowser(c tele.Context) error {
	ctx := reqCtx(c)
	userID := c.Sender().ID

	categories, err := h.Catalog.AvailableCategories(ctx)
	if err != nil {
		logger.TG.Error("category query failed",
			slog.String("event", "browser.enter"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return h.fail(c)
	}
	if len(categories) == 0 {
		return c.Send("Sorry, no rooms are available right now.")
	}

	h.Store.Update(userID, func(s *state.Session) {
		s.Browse = &state.BrowseState{Categories: categories, Index: 0}
	})
	return h.renderCategoryPage(c)
}

// BrowsePrev moves one category back with wraparound and re-renders.
func (h *Handlers) BrowsePrev(c tele.Context) error {
	return h.browseStep(c, func(b *state.BrowseState) { b.Prev() })
}

// BrowseNext moves one category forward with wraparound and re-renders.
func (h *Handlers) BrowseNext(c tele.Context) error {
	return h.browseStep(c, func(b *state.BrowseState) { b.Next() })
}

func (h *Handlers) browseStep(c tele.Context, move func(*state.BrowseState)) error {
	userID := c.Sender().ID
	session := h.Store.Get(userID)
	if session.Browse == nil || len(session.Browse.Categories) == 0 {
		// Browser was never entered (or the process restarted); start over.
		return h.EnterBrowser(c)
	}
	h.Store.Update(userID, func(s *state.Session) {
		move(s.Browse)
	})
	return h.renderCategoryPage(c)
}

// renderCategoryPage retires the previous page and renders the current
// category: one album with a captioned lead photo per room, then the
// control row. The new message ids replace the retired ones in the
// session. The per-user lock held by the router keeps two renders for
// one session from interleaving.
func (h *Handlers) renderCategoryPage(c tele.Context) error {
	ctx := reqCtx(c)
	userID := c.Sender().ID
	chatID := c.Chat().ID

	h.retirePage(c)

	session := h.Store.Get(userID)
	if session.Browse == nil {
		return c.Send(msgInvalidRequest)
	}
	category := session.Browse.Current()

	rooms, err := h.Catalog.AvailableByCategory(ctx, category)
	if err != nil {
		logger.TG.Error("room query failed",
			slog.String("event", "browser.render"),
			slog.String("category", category),
			slog.String("err", err.Error()),
		)
		return h.fail(c)
	}
	if len(rooms) == 0 {
		return c.Send("No rooms left in this category.")
	}

	var photos []AlbumPhoto
	for _, room := range rooms {
		images, err := h.Catalog.Images(ctx, room.ID)
		if err != nil {
			logger.TG.Error("image query failed",
				slog.String("event", "browser.render"),
				slog.Int64("room_id", room.ID),
				slog.String("err", err.Error()),
			)
			return h.fail(c)
		}
		if len(images) == 0 {
			continue
		}
		caption := fmt.Sprintf("Category: %s\nPrice: %.2f\n%s", category, room.Price, room.Description)
		photos = append(photos, AlbumPhoto{URL: images[0].ImageURL, Caption: caption})
		for _, img := range images[1:] {
			photos = append(photos, AlbumPhoto{URL: img.ImageURL})
		}
	}

	var pageIDs []int
	if len(photos) > 0 {
		ids, err := h.Deliver.SendAlbum(chatID, photos)
		if err != nil {
			logger.TG.Error("album send failed",
				slog.String("event", "browser.render"),
				slog.String("category", category),
				slog.String("err", err.Error()),
			)
			return h.fail(c)
		}
		pageIDs = append(pageIDs, ids...)
	}

	markup := keyboard.Pager(fmt.Sprintf("book_%d", rooms[0].ID))
	promptID, err := h.Deliver.SendText(chatID, "Choose an action:", markup)
	if err != nil {
		logger.TG.Error("prompt send failed",
			slog.String("event", "browser.render"),
			slog.String("err", err.Error()),
		)
		return h.fail(c)
	}
	pageIDs = append(pageIDs, promptID)

	h.Store.Update(userID, func(s *state.Session) {
		s.Messages = pageIDs
	})
	return nil
}

// retirePage deletes every message of the previously rendered page and
// clears the tracked list. Individual delete failures are logged and
// skipped: the page may already be partially gone.
func (h *Handlers) retirePage(c tele.Context) {
	userID := c.Sender().ID
	chatID := c.Chat().ID

	session := h.Store.Get(userID)
	for _, msgID := range session.Messages {
		if err := h.Deliver.Delete(chatID, msgID); err != nil {
			logger.TG.Warn("page delete failed",
				slog.String("event", "browser.retire"),
				slog.Int("message_id", msgID),
				slog.String("err", err.Error()),
			)
		}
	}
	h.Store.Update(userID, func(s *state.Session) {
		s.Messages = nil
	})
}
