package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mkoike/shiftworks-backend/internal/roster"
	"github.com/mkoike/shiftworks-backend/internal/shift/period"
)

// Scheduler owns the two monthly roster jobs. The jobs only read the
// clock and delegate to the builder, which takes explicit dates, so
// the build logic itself stays deterministic and testable.
type Scheduler struct {
	cron    *cron.Cron
	builder *roster.Builder
	now     func() time.Time
}

func New(builder *roster.Builder) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		builder: builder,
		now:     time.Now,
	}
}

// Start registers the jobs and launches the cron loop:
//   - day 20, 00:00 — next month's first-half roster (days 1-15),
//     built once that half's submissions start arriving;
//   - day 5, 00:00 — the current month's second-half roster
//     (day 16 through month end).
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 0 20 * *", s.firstHalfJob); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 0 5 * *", s.secondHalfJob); err != nil {
		return err
	}
	s.cron.Start()
	log.Println("Scheduler started.")
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) firstHalfJob() {
	now := s.now()
	next := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
	if _, _, err := s.builder.BuildHalf(next.Year(), next.Month(), period.FirstHalf); err != nil {
		log.Printf("first-half roster build failed: %v", err)
	}
}

func (s *Scheduler) secondHalfJob() {
	now := s.now()
	if _, _, err := s.builder.BuildHalf(now.Year(), now.Month(), period.SecondHalf); err != nil {
		log.Printf("second-half roster build failed: %v", err)
	}
}
