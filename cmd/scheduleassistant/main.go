package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/erickreynosop/scheduleassistant/internal/api"
	"github.com/erickreynosop/scheduleassistant/internal/cli"
	"github.com/erickreynosop/scheduleassistant/internal/config"
	"github.com/erickreynosop/scheduleassistant/internal/db"
	"github.com/erickreynosop/scheduleassistant/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg := config.Load()

	if len(os.Args) > 1 {
		if err := runCommand(cfg, os.Args[1], os.Args[2:]); err != nil {
			log.Fatalf("%s failed: %v", os.Args[1], err)
		}
		return
	}

	location := mustLoadLocation(cfg.App.Timezone)
	time.Local = location

	database, err := db.OpenSQLite(cfg.App.DBPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	sms := services.NewSMSSender(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber)
	if !sms.Configured() {
		log.Printf("twilio is not configured, SMS notifications are disabled")
	}

	handler, err := api.NewHandler(database, cfg.App.SecretKey, location, cfg.App.CookieSecure, sms)
	if err != nil {
		log.Fatalf("handler init failed: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "ScheduleAssistant",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf_token",
		CookieName:     "schedassist_csrf",
		CookieSameSite: "Lax",
		CookieHTTPOnly: false,
		CookieSecure:   cfg.App.CookieSecure,
		ContextKey:     "csrf",
	}))

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("ScheduleAssistant listening on http://0.0.0.0:%s (db: %s, tz: %s)", cfg.App.Port, cfg.App.DBPath, location.String())
	if err := app.Listen(":" + cfg.App.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func runCommand(cfg config.Config, name string, args []string) error {
	switch name {
	case "promote":
		if len(args) != 1 {
			return fmt.Errorf("usage: %s promote <email>", os.Args[0])
		}
		return cli.RunPromoteCommand(cfg.App.DBPath, args[0])
	case "create-boss":
		if len(args) < 2 || len(args) > 3 {
			return fmt.Errorf("usage: %s create-boss <full name> <email> [phone]", os.Args[0])
		}
		phone := ""
		if len(args) == 3 {
			phone = args[2]
		}
		return cli.RunCreateBossCommand(cfg.App.DBPath, args[0], args[1], phone)
	case "reset-password":
		if len(args) != 1 {
			return fmt.Errorf("usage: %s reset-password <email>", os.Args[0])
		}
		return cli.RunResetPasswordCommand(cfg.App.DBPath, args[0])
	default:
		return fmt.Errorf("unknown command %q (expected promote, create-boss or reset-password)", name)
	}
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}
