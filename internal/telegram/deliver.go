package telegram

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/m3rciful/hotelbot/internal/telegram/handlers"

	tele "gopkg.in/telebot.v4"
)

// BotDeliverer adapts *tele.Bot to the outbound surfaces the browser
// and the broadcast scheduler send through. Sends are synchronous so
// the pager's delete-then-send ordering holds on the wire.
//
// The bot instance only exists once Run has built it, so the deliverer
// is created empty and bound in OnStart, before any update is handled.
type BotDeliverer struct {
	mu  sync.RWMutex
	bot *tele.Bot
}

// NewDeliverer creates an unbound deliverer.
func NewDeliverer() *BotDeliverer {
	return &BotDeliverer{}
}

// Bind attaches the running bot instance.
func (d *BotDeliverer) Bind(bot *tele.Bot) {
	d.mu.Lock()
	d.bot = bot
	d.mu.Unlock()
}

func (d *BotDeliverer) instance() (*tele.Bot, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.bot == nil {
		return nil, fmt.Errorf("deliverer: bot not bound")
	}
	return d.bot, nil
}

func (d *BotDeliverer) SendAlbum(chatID int64, photos []handlers.AlbumPhoto) ([]int, error) {
	bot, err := d.instance()
	if err != nil {
		return nil, err
	}
	album := make(tele.Album, 0, len(photos))
	for _, p := range photos {
		album = append(album, &tele.Photo{
			File:    tele.FromURL(p.URL),
			Caption: p.Caption,
		})
	}
	messages, err := bot.SendAlbum(tele.ChatID(chatID), album)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

func (d *BotDeliverer) SendText(chatID int64, text string, markup *tele.ReplyMarkup) (int, error) {
	bot, err := d.instance()
	if err != nil {
		return 0, err
	}
	var m *tele.Message
	if markup != nil {
		m, err = bot.Send(tele.ChatID(chatID), text, markup)
	} else {
		m, err = bot.Send(tele.ChatID(chatID), text)
	}
	if err != nil {
		return 0, err
	}
	return m.ID, nil
}

func (d *BotDeliverer) Delete(chatID int64, messageID int) error {
	bot, err := d.instance()
	if err != nil {
		return err
	}
	return bot.Delete(&tele.StoredMessage{
		ChatID:    chatID,
		MessageID: strconv.Itoa(messageID),
	})
}

// SendTo delivers one broadcast message. Implements the scheduler's
// sender surface.
func (d *BotDeliverer) SendTo(chatID int64, text string) error {
	_, err := d.SendText(chatID, text, nil)
	return err
}

var _ handlers.Deliverer = (*BotDeliverer)(nil)
