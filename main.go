package main

import (
	"log"

	"github.com/labstack/echo/v4"

	"github.com/mkoike/shiftworks-backend/config"
	"github.com/mkoike/shiftworks-backend/internal/lineworks"
	"github.com/mkoike/shiftworks-backend/internal/scheduler"
	"github.com/mkoike/shiftworks-backend/internal/shift/routes"
	"github.com/mkoike/shiftworks-backend/pkg/storage/mariadb"
	"github.com/mkoike/shiftworks-backend/ws"
)

func main() {
	cfg := config.LoadConfig()

	db := mariadb.Connect(cfg)
	if err := mariadb.EnsureSchema(db); err != nil {
		log.Fatalf("schema bootstrap failed: %v", err)
	}

	hub := ws.NewHub()
	go hub.Run()

	lw := lineworks.NewClient(cfg)

	e := echo.New()
	e.HideBanner = true
	builder := routes.Init(e, db, cfg, hub, lw)

	sched := scheduler.New(builder)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	log.Printf("Server listening on port %s...", cfg.Port)
	log.Fatal(e.Start(":" + cfg.Port))
}
