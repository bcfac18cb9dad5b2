package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m3rciful/hotelbot/internal/broadcast"
	"github.com/m3rciful/hotelbot/internal/config"
	"github.com/m3rciful/hotelbot/internal/database"
	"github.com/m3rciful/hotelbot/internal/logger"
	"github.com/m3rciful/hotelbot/internal/repository"
	"github.com/m3rciful/hotelbot/internal/telegram"
	"github.com/m3rciful/hotelbot/internal/telegram/commands"
	"github.com/m3rciful/hotelbot/internal/telegram/handlers"
	"github.com/m3rciful/hotelbot/internal/telegram/middleware"
	"github.com/m3rciful/hotelbot/internal/telegram/router"
	"github.com/m3rciful/hotelbot/internal/telegram/state"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

const dbWaitTimeout = 60 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("bot: %v", err)
	}
}

func run() error {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(cfg); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() {
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown: %v", err)
		}
	}()

	if err := database.WaitForPostgres(database.DSN(cfg.Database), dbWaitTimeout); err != nil {
		return fmt.Errorf("wait for database: %w", err)
	}
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.RunMigrations(cfg.Database); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	users := repository.NewUserRepository(db)
	rooms := repository.NewRoomRepository(db)
	guests := repository.NewGuestRepository(db)
	services := repository.NewServiceRepository(db)

	store := state.NewMemoryManager()
	deliver := telegram.NewDeliverer()
	notify := broadcast.NewScheduler(users, deliver, cfg.BroadcastDelay())

	h := handlers.New(store, deliver, users, rooms, guests, services, notify)

	reg := telegram.NewRegistry()
	rt := router.New(h, reg)
	reg.SetTextFallback(rt.HandleText)
	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.Start,
		Description: "Start the bot and register",
	})
	reg.RegisterCommand("/rooms", commands.Command{
		Handler:     h.EnterBrowser,
		Description: "Browse available rooms",
	})
	reg.RegisterCommand("/services", commands.Command{
		Handler:     h.ShowServices,
		Description: "Order extra services",
	})
	reg.RegisterCommand("/mybookings", commands.Command{
		Handler:     h.MyBookings,
		Description: "Show your bookings and orders",
		Aliases:     []string{"/bookings"},
	})
	reg.RegisterCommand("/admin", commands.Command{
		Handler:     h.AdminPanel,
		Description: "Open the admin panel",
		AdminOnly:   true,
		Hidden:      true,
	})

	adminGate := middleware.AdminOnlyMiddleware(middleware.AdminOptions{
		Checker: h,
		OnReject: func(c tele.Context) error {
			return c.Send("You are not allowed to do that.")
		},
	})

	routes := []telegram.Route{
		{Endpoint: "/start", Handler: reg.Commands()["/start"].Handler},
		{Endpoint: "/rooms", Handler: reg.Commands()["/rooms"].Handler},
		{Endpoint: "/services", Handler: reg.Commands()["/services"].Handler},
		{Endpoint: "/mybookings", Handler: reg.Commands()["/mybookings"].Handler},
		{Endpoint: "/admin", Handler: adminGate(reg.Commands()["/admin"].Handler)},
		{Endpoint: tele.OnCallback, Handler: rt.HandleCallback},
		{Endpoint: tele.OnText, Handler: reg.TextFallback()},
	}

	middlewares := []telegram.Middleware{
		{Name: "recover", Use: middleware.RecoverMiddleware},
		{Name: "logger", Use: middleware.LoggerMiddleware},
		{Name: "rate_limit", Use: middleware.RateLimitMiddleware(middleware.RateLimitOptions{
			Interval: time.Duration(cfg.RateLimit.IntervalMS) * time.Millisecond,
			Exclude:  rateLimitExclusions(cfg.RateLimit.ExcludeUpdates),
		})},
		{Name: "serialize", Use: middleware.SerializeMiddleware(store)},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	startedAt := time.Now()
	return telegram.Run(ctx, telegram.RunOptions{
		Config:      cfg,
		Registry:    reg,
		Middlewares: middlewares,
		Routes:      routes,
		OnStart: func(ctx context.Context, bot *tele.Bot) error {
			deliver.Bind(bot)
			logger.TG.Info("bot ready",
				slog.String("event", "ready"),
				slog.Duration("startup_duration", logger.RoundMS(time.Since(startedAt))),
			)
			return nil
		},
		OnStop: func(ctx context.Context, bot *tele.Bot) error {
			logger.TG.Info("shutting down",
				slog.String("event", "shutdown"),
			)
			return nil
		},
	})
}

func rateLimitExclusions(kinds []string) map[string]struct{} {
	if len(kinds) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(kinds))
	for _, k := range kinds {
		set[k] = struct{}{}
	}
	return set
}
