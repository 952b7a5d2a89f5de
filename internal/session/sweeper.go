package session

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper runs Manager.Sweep on a cron schedule.
type Sweeper struct {
	manager    *Manager
	schedule   string
	cronRunner *cron.Cron
}

// NewSweeper creates a Sweeper for schedule, e.g. "@every 5m".
func NewSweeper(manager *Manager, schedule string) *Sweeper {
	return &Sweeper{
		manager:  manager,
		schedule: schedule,
		cronRunner: cron.New(
			cron.WithChain(
				cron.SkipIfStillRunning(cron.DefaultLogger),
				cron.Recover(cron.DefaultLogger),
			),
		),
	}
}

func (s *Sweeper) sweep() {
	if removed := s.manager.Sweep(); removed > 0 {
		log.Printf("Session sweep evicted %d idle sessions, %d remaining", removed, s.manager.Len())
	}
}

// Start schedules the sweep job and starts the cron runner.
func (s *Sweeper) Start() error {
	entryID, err := s.cronRunner.AddFunc(s.schedule, s.sweep)
	if err != nil {
		return fmt.Errorf("invalid session sweep schedule %q: %w", s.schedule, err)
	}
	log.Printf("Scheduled session sweep, EntryID: %d, Cron: '%s'", entryID, s.schedule)
	s.cronRunner.Start()
	return nil
}

// Stop shuts down the cron runner, waiting for a running sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cronRunner.Stop()
	select {
	case <-ctx.Done():
		log.Println("Session sweeper stopped gracefully.")
	case <-time.After(15 * time.Second):
		log.Println("Session sweeper shutdown timed out.")
	}
}
