package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"coopfund/internal/adapters/persistence/repositories"
	"coopfund/internal/core/domain"
)

// ReminderService runs the daily background scan that opens payment_reminder
// tasks for open loans whose next payment date has passed.
type ReminderService struct {
	loanRepo repositories.LoanRepository
	taskRepo repositories.TaskRepository
	cron     *cron.Cron
}

// NewReminderService creates a new reminder service
func NewReminderService(loanRepo repositories.LoanRepository, taskRepo repositories.TaskRepository) *ReminderService {
	return &ReminderService{
		loanRepo: loanRepo,
		taskRepo: taskRepo,
		cron:     cron.New(),
	}
}

// Start schedules the overdue-payment scan every morning at 08:30.
func (s *ReminderService) Start() {
	s.cron.AddFunc("30 8 * * *", func() {
		opened, err := s.OpenOverduePaymentTasks(context.Background(), time.Now())
		if err != nil {
			log.Printf("Payment reminder scan failed: %v", err)
			return
		}
		if opened > 0 {
			log.Printf("Opened %d payment reminder tasks", opened)
		}
	})
	s.cron.Start()
	log.Println("Reminder scheduler started")
}

// Stop stops the scheduler; a scan already in flight finishes.
func (s *ReminderService) Stop() {
	s.cron.Stop()
	log.Println("Reminder scheduler stopped")
}

// OpenOverduePaymentTasks opens one payment_reminder task per open loan
// whose NextPaymentDue has passed. A loan that already has an open reminder
// task is skipped, so repeated scans do not stack duplicates. Returns the
// number of tasks opened.
func (s *ReminderService) OpenOverduePaymentTasks(ctx context.Context, now time.Time) (int, error) {
	loans, err := s.loanRepo.ListOpen(ctx)
	if err != nil {
		return 0, err
	}

	reminders, err := s.taskRepo.ListByType(ctx, domain.TaskTypePaymentReminder)
	if err != nil {
		return 0, err
	}
	open := make(map[string]bool, len(reminders))
	for _, task := range reminders {
		if task.Status != domain.TaskCompleted {
			open[task.Title] = true
		}
	}

	opened := 0
	for _, loan := range loans {
		if loan.NextPaymentDue == nil || loan.NextPaymentDue.After(now) {
			continue
		}
		title := overdueReminderTitle(loan.ID)
		if open[title] {
			continue
		}

		description := fmt.Sprintf("Monthly payment of %.2f for member #%d was due %s",
			loan.MonthlyPayment, loan.MemberID, loan.NextPaymentDue.Format("2006-01-02"))
		due := now.AddDate(0, 0, 3)
		task := &domain.Task{
			Title:       title,
			Description: &description,
			Type:        domain.TaskTypePaymentReminder,
			Status:      domain.TaskPending,
			CreatedAt:   now,
			DueDate:     &due,
		}
		if err := s.taskRepo.Create(ctx, task); err != nil {
			return opened, err
		}
		opened++
	}
	return opened, nil
}

// overdueReminderTitle keys reminder tasks per loan so rescans can dedupe.
func overdueReminderTitle(loanID uint) string {
	return fmt.Sprintf("Overdue payment: loan #%d", loanID)
}
