package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"crm-management-api/internal/report"
	"crm-management-api/internal/store"
)

// SummaryLogger logs the dashboard numbers once a day so the pipeline state
// shows up in the server logs without anyone opening the UI.
type SummaryLogger struct {
	scheduler *cron.Cron
	store     store.Store
	jobID     cron.EntryID
}

func NewSummaryLogger(st store.Store) *SummaryLogger {
	return &SummaryLogger{
		scheduler: cron.New(),
		store:     st,
	}
}

// Start schedules the daily run shortly after midnight.
func (j *SummaryLogger) Start() error {
	var err error
	j.jobID, err = j.scheduler.AddFunc("5 0 * * *", j.run)
	if err != nil {
		return fmt.Errorf("schedule summary job: %w", err)
	}
	j.scheduler.Start()
	return nil
}

func (j *SummaryLogger) Stop() {
	j.scheduler.Stop()
}

func (j *SummaryLogger) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users, err := j.store.ListUsers(ctx)
	if err != nil {
		log.Printf("summary job: users: %v", err)
		return
	}
	tasks, err := j.store.ListTasks(ctx)
	if err != nil {
		log.Printf("summary job: tasks: %v", err)
		return
	}
	leads, err := j.store.ListLeads(ctx)
	if err != nil {
		log.Printf("summary job: leads: %v", err)
		return
	}

	s := report.Summarize(users, tasks, leads)
	log.Printf("daily summary: %d employees, %d drivers, %d tasks (%d pending), %d leads (%d active), conversion %.1f%%",
		s.TotalEmployees, s.TotalDrivers, s.TotalTasks, s.PendingTasks,
		s.TotalLeads, s.ActiveLeads, s.ConversionRate*100)
}
