package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eventpro-backend/clock"
	"eventpro-backend/models"
	"eventpro-backend/monitoring"
	"eventpro-backend/repository"
	"eventpro-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

const reminderChannel = "sms"

// Notifier delivers a text message and returns the provider's message id.
type Notifier interface {
	Send(ctx context.Context, to, body string) (string, error)
}

type TwilioNotifier struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioNotifier(accountSID, authToken, from string) *TwilioNotifier {
	return &TwilioNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: from,
	}
}

func (n *TwilioNotifier) Send(_ context.Context, to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(n.from)
	params.SetBody(body)

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}

// ReminderSummary counts the outcome of one reminder run.
type ReminderSummary struct {
	Sent    int
	Failed  int
	Skipped int
}

// ReminderService texts assignees about incomplete tasks that fall due within
// the window. A task is reminded at most once successfully.
type ReminderService struct {
	store    *repository.Store
	notifier Notifier
	clock    clock.Clock
	window   time.Duration
	cron     *cron.Cron
}

func NewReminderService(store *repository.Store, notifier Notifier, clk clock.Clock, window time.Duration) *ReminderService {
	return &ReminderService{store: store, notifier: notifier, clock: clk, window: window}
}

func (s *ReminderService) StartScheduler(spec string) error {
	c, err := utils.StartScheduler(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if _, err := s.SendDueReminders(ctx); err != nil {
			slog.Error("reminder run failed", "error", err)
		}
	})
	if err != nil {
		return err
	}
	s.cron = c
	slog.Info("Reminder scheduler started", "schedule", spec, "window", s.window)
	return nil
}

// Stop waits for a running job to finish.
func (s *ReminderService) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

func (s *ReminderService) SendDueReminders(ctx context.Context) (ReminderSummary, error) {
	var summary ReminderSummary
	now := s.clock.Now()

	tasks, err := s.store.AssignedTasksDue(ctx, now, now.Add(s.window))
	if err != nil {
		return summary, err
	}

	for i := range tasks {
		task := &tasks[i]
		if task.AssignedTo == nil || !utils.ValidatePhone(task.AssignedTo.Phone) {
			summary.Skipped++
			continue
		}
		sent, err := s.store.ReminderSent(ctx, task.ID)
		if err != nil {
			return summary, err
		}
		if sent {
			summary.Skipped++
			continue
		}

		if s.remind(ctx, task) {
			summary.Sent++
		} else {
			summary.Failed++
		}
	}

	slog.Info("Reminder run completed", "sent", summary.Sent, "failed", summary.Failed, "skipped", summary.Skipped)
	return summary, nil
}

func (s *ReminderService) remind(ctx context.Context, task *models.Task) bool {
	body := reminderMessage(task, s.clock.Now())
	to := utils.NormalizePhone(task.AssignedTo.Phone)

	status := models.ReminderStatusSent
	errorMsg := ""
	sid, err := s.notifier.Send(ctx, to, body)
	if err != nil {
		slog.Warn("Failed to send reminder", "task", task.ID, "error", err)
		status = models.ReminderStatusFailed
		errorMsg = err.Error()
	} else {
		slog.Info("Reminder sent", "task", task.ID, "sid", sid)
	}
	monitoring.RemindersSent.WithLabelValues(status).Inc()

	entry := &models.ReminderLog{
		TaskID:       task.ID,
		UserID:       *task.AssignedToID,
		Channel:      reminderChannel,
		Message:      body,
		Status:       status,
		ErrorMessage: errorMsg,
		SentAt:       s.clock.Now(),
	}
	if err := s.store.LogReminder(ctx, entry); err != nil {
		slog.Error("Failed to log reminder", "task", task.ID, "error", err)
	}
	return status == models.ReminderStatusSent
}

func reminderMessage(task *models.Task, now time.Time) string {
	due := "on " + task.DueDate.Format("Jan 2 15:04")
	switch utils.DaysBetween(now, task.DueDate) {
	case 0:
		due = "today at " + task.DueDate.Format("15:04")
	case 1:
		due = "tomorrow at " + task.DueDate.Format("15:04")
	}
	if task.Event != nil {
		return fmt.Sprintf("Reminder: %q for %s is due %s.", task.Title, task.Event.Name, due)
	}
	return fmt.Sprintf("Reminder: %q is due %s.", task.Title, due)
}
