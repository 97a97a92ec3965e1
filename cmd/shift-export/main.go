// Command shift-export pulls one period's shift submissions from the
// group chat, stores them, and writes the roster spreadsheet and PDF.
// Meant for manual runs; the server binary does the same on a cron
// schedule.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/mkoike/shiftworks-backend/config"
	"github.com/mkoike/shiftworks-backend/internal/lineworks"
	"github.com/mkoike/shiftworks-backend/internal/roster"
	"github.com/mkoike/shiftworks-backend/internal/shift/parser"
	"github.com/mkoike/shiftworks-backend/internal/shift/period"
	"github.com/mkoike/shiftworks-backend/internal/shift/services"
	"github.com/mkoike/shiftworks-backend/pkg/storage/mariadb"
)

func main() {
	periodFlag := flag.String("period", "", "first_half or second_half (auto-detected when omitted)")
	flag.Parse()

	cfg := config.LoadConfig()
	now := time.Now()

	p := period.Detect(now)
	if *periodFlag != "" {
		var err error
		if p, err = period.Parse(*periodFlag); err != nil {
			log.Fatal(err)
		}
	}
	fmt.Printf("-> period: %s\n", p)

	start, end := period.CollectionWindow(now, p)
	// message timestamps run to the end of the window's last day
	fetchEnd := end.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	fmt.Printf("-> collecting messages from %s to %s\n",
		start.Format("2006-01-02"), end.Format("2006-01-02"))

	lw := lineworks.NewClient(cfg)
	messages, err := lw.Messages(cfg.LWChatID, start, fetchEnd)
	if err != nil {
		log.Fatalf("failed to fetch messages: %v", err)
	}
	fmt.Printf("-> %d messages fetched\n", len(messages))

	db := mariadb.Connect(cfg)
	if err := mariadb.EnsureSchema(db); err != nil {
		log.Fatalf("schema bootstrap failed: %v", err)
	}
	shiftService := services.NewShiftService(db)

	saved := 0
	for _, msg := range messages {
		entries := parser.ParseHeaderMessage(msg.Body, now.Year(), now.Month())
		if err := shiftService.UpsertAll(entries); err != nil {
			log.Fatalf("failed to store shifts: %v", err)
		}
		saved += len(entries)
	}
	fmt.Printf("-> %d shift entries stored\n", saved)

	builder := roster.NewBuilder(shiftService, cfg.OutputDir, nil)
	xlsx, pdf, err := builder.BuildHalf(now.Year(), now.Month(), p)
	if err != nil {
		log.Fatalf("failed to build roster: %v", err)
	}
	fmt.Printf("-> wrote %s\n", xlsx)
	fmt.Printf("-> wrote %s\n", pdf)
}
