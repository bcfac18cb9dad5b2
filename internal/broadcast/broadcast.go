package broadcast

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/m3rciful/hotelbot/internal/logger"
	"github.com/m3rciful/hotelbot/internal/model"
	"log/slog"
)

// Sender delivers one message to one recipient chat.
type Sender interface {
	SendTo(chatID int64, text string) error
}

// SenderFunc adapts a bare function to the Sender interface.
type SenderFunc func(chatID int64, text string) error

// SendTo executes the underlying function.
func (f SenderFunc) SendTo(chatID int64, text string) error {
	return f(chatID, text)
}

// UserLister returns every known user.
type UserLister interface {
	ListAll(ctx context.Context) ([]model.User, error)
}

// Result is the tally of one fan-out run. Sent+Failed always equals the
// number of recipients attempted.
type Result struct {
	Sent   int
	Failed int
	// Errors aggregates the per-recipient failures of the run.
	Errors error
}

// Scheduler fans a message out to every known user with a fixed pause
// between sends.
type Scheduler struct {
	users  UserLister
	sender Sender
	delay  time.Duration
}

// NewScheduler builds a Scheduler. A non-positive delay disables pacing.
func NewScheduler(users UserLister, sender Sender, delay time.Duration) *Scheduler {
	return &Scheduler{users: users, sender: sender, delay: delay}
}

// Broadcast sends text to all users. A per-recipient failure is counted
// and collected but never aborts the remaining fan-out. The inter-send
// delay respects the external rate limit.
func (s *Scheduler) Broadcast(ctx context.Context, text string) (Result, error) {
	runID := uuid.NewString()
	start := time.Now()

	users, err := s.users.ListAll(ctx)
	if err != nil {
		logger.BCast.Error("recipient list failed",
			slog.String("event", "broadcast"),
			slog.String("run_id", runID),
			slog.String("err", err.Error()),
		)
		return Result{}, err
	}

	var result Result
	var errs *multierror.Error
	for i, user := range users {
		if i > 0 && s.delay > 0 {
			select {
			case <-ctx.Done():
				// Count the remaining recipients as failed so the
				// tally still covers everyone attempted.
				result.Failed += len(users) - i
				errs = multierror.Append(errs, ctx.Err())
				result.Errors = errs.ErrorOrNil()
				return result, nil
			case <-time.After(s.delay):
			}
		}
		if err := s.sender.SendTo(user.TelegramID, text); err != nil {
			result.Failed++
			errs = multierror.Append(errs, err)
			logger.BCast.Warn("send failed",
				slog.String("event", "broadcast.send"),
				slog.String("run_id", runID),
				slog.Int64("user_id", user.TelegramID),
				slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
			)
			continue
		}
		result.Sent++
	}
	result.Errors = errs.ErrorOrNil()

	logger.BCast.Info("broadcast done",
		slog.String("event", "broadcast"),
		slog.String("run_id", runID),
		slog.Int("sent", result.Sent),
		slog.Int("failed", result.Failed),
		slog.Int("total", len(users)),
		slog.Duration("duration", logger.Took(start)),
	)
	return result, nil
}
