package telegram

import (
	"testing"

	"github.com/m3rciful/hotelbot/internal/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func noopHandler(tele.Context) error { return nil }

func TestListCommandsHonorsMenuVisibility(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/start", commands.Command{Handler: noopHandler, Description: "Start"})
	reg.RegisterCommand("/admin", commands.Command{Handler: noopHandler, Description: "Admin", AdminOnly: true, Hidden: true})
	reg.RegisterCommand("/maintenance", commands.Command{Handler: noopHandler, Description: "Internal", Hidden: true})

	visible := reg.ListCommands(true)
	if len(visible) != 1 || visible[0].Text != "/start" {
		t.Fatalf("visible = %+v, want only /start", visible)
	}
	if all := reg.ListCommands(false); len(all) != 3 {
		t.Fatalf("all = %d commands, want 3", len(all))
	}
}

func TestLookupCommandResolvesAliases(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/mybookings", commands.Command{
		Handler:     noopHandler,
		Description: "Bookings",
		Aliases:     []string{"/bookings"},
	})

	key, _, ok := reg.LookupCommand("/bookings")
	if !ok || key != "/mybookings" {
		t.Fatalf("lookup = %q, %v", key, ok)
	}
	if _, _, ok = reg.LookupCommand("/nope"); ok {
		t.Fatal("unknown command resolved")
	}
}
