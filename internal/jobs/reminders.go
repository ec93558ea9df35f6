package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/yungbote/crmcore-backend/internal/logger"
)

// ReminderJob queries orders placed within the trailing window and logs one
// reminder line per order with the customer's email.
type ReminderJob struct {
	client  *APIClient
	logPath string
	window  time.Duration
	log     *logger.Logger
	now     func() time.Time
}

func NewReminderJob(client *APIClient, logPath string, window time.Duration, log *logger.Logger) *ReminderJob {
	return &ReminderJob{
		client:  client,
		logPath: logPath,
		window:  window,
		log:     log.With("job", "order_reminders"),
		now:     time.Now,
	}
}

func (rj *ReminderJob) Run(ctx context.Context) error {
	since := rj.now().Add(-rj.window)
	orders, err := rj.client.OrdersSince(ctx, since)
	if err != nil {
		rj.log.Error("Order reminders query failed", "error", err)
		return err
	}

	timestamp := rj.now().Format(time.RFC3339)
	lines := make([]string, 0, len(orders))
	for _, order := range orders {
		email := "N/A"
		if order.Customer != nil && order.Customer.Email != "" {
			email = order.Customer.Email
		}
		lines = append(lines, fmt.Sprintf("[%s] REMINDER: Order ID %s (Customer: %s)", timestamp, order.ID, email))
	}

	if err := appendLines(rj.logPath, lines); err != nil {
		rj.log.Error("Failed to write reminder log", "error", err)
		return err
	}
	rj.log.Info("Order reminders processed!", "count", len(orders))
	return nil
}
