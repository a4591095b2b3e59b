package workers

import (
	"context"
	"time"

	"projecthub_backend/internal/logger"
	"projecthub_backend/internal/models"
	"projecthub_backend/internal/repositories"
	"projecthub_backend/internal/services"

	"gorm.io/gorm"
)

// dueSoonWindow is how far ahead of the deadline the reminder goes out.
const dueSoonWindow = 24 * time.Hour

// DueDateWorker periodically scans assigned open tasks and notifies
// assignees about approaching and missed deadlines. Each task/type pair is
// notified at most once; existing rows are the dedup record.
type DueDateWorker struct {
	db                  *gorm.DB
	taskRepo            repositories.TaskRepository
	notificationRepo    repositories.NotificationRepository
	notificationService services.NotificationService
	interval            time.Duration
}

func NewDueDateWorker(
	db *gorm.DB,
	taskRepo repositories.TaskRepository,
	notificationRepo repositories.NotificationRepository,
	notificationService services.NotificationService,
	interval time.Duration,
) *DueDateWorker {
	return &DueDateWorker{
		db:                  db,
		taskRepo:            taskRepo,
		notificationRepo:    notificationRepo,
		notificationService: notificationService,
		interval:            interval,
	}
}

// Run blocks until the context is cancelled. One scan runs immediately on
// start so a restart does not delay overdue reminders by a full interval.
func (w *DueDateWorker) Run(ctx context.Context) {
	logger.Info("due-date worker started", "interval", w.interval)

	w.Scan()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("due-date worker stopped")
			return
		case <-ticker.C:
			w.Scan()
		}
	}
}

// Scan runs a single pass over assigned open tasks. Safe to call repeatedly;
// a task already notified for a given type is skipped.
func (w *DueDateWorker) Scan() {
	now := time.Now()

	dueSoon, err := w.taskRepo.FindDueBetween(w.db, now, now.Add(dueSoonWindow))
	if err != nil {
		logger.WorkerLog("due_date", "scan due-soon", err)
	} else {
		for i := range dueSoon {
			w.notifyOnce(&dueSoon[i], models.NotificationTaskDueSoon)
		}
	}

	overdue, err := w.taskRepo.FindOverdue(w.db, now)
	if err != nil {
		logger.WorkerLog("due_date", "scan overdue", err)
		return
	}
	for i := range overdue {
		w.notifyOnce(&overdue[i], models.NotificationTaskOverdue)
	}
}

func (w *DueDateWorker) notifyOnce(task *models.Task, nType models.NotificationType) {
	if task.AssignedToID == nil {
		return
	}

	exists, err := w.notificationRepo.ExistsForTask(w.db, *task.AssignedToID, nType, task.ID)
	if err != nil {
		logger.WorkerLog("due_date", "dedup check", err)
		return
	}
	if exists {
		return
	}

	switch nType {
	case models.NotificationTaskDueSoon:
		w.notificationService.Fanout(w.db, services.TaskDueSoonEvent{Task: task})
	case models.NotificationTaskOverdue:
		w.notificationService.Fanout(w.db, services.TaskOverdueEvent{Task: task})
	}
}
