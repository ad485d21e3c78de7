package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/secureexam/portal-backend/internal/config"
	"github.com/secureexam/portal-backend/internal/mailer"
)

const (
	NotifyPollTimeout = 1 * time.Second
	// NotifyMaxRetries bounds redelivery of a failing notice so a dead
	// address cannot wedge the queue.
	NotifyMaxRetries = 3
)

// NotifyWorker drains the assignment notification queue and delivers the
// emails. Assignment itself never waits on SMTP; this worker absorbs the
// latency and retries.
type NotifyWorker struct {
	rdb  *redis.Client
	mail mailer.Mailer
	log  zerolog.Logger
}

// NewNotifyWorker creates a new NotifyWorker.
func NewNotifyWorker(rdb *redis.Client, mail mailer.Mailer, log zerolog.Logger) *NotifyWorker {
	return &NotifyWorker{
		rdb:  rdb,
		mail: mail,
		log:  log.With().Str("component", "notify_worker").Logger(),
	}
}

type noticePayload struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	ExamTitle       string `json:"exam_title"`
	DurationMinutes int    `json:"duration_minutes"`
	TotalMarks      int    `json:"total_marks"`
	Attempts        int    `json:"attempts,omitempty"`
}

// Start runs the delivery loop until the context is cancelled.
func (w *NotifyWorker) Start(ctx context.Context) {
	w.log.Info().Msg("NotifyWorker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested")
			return

		default:
			item, err := w.rdb.BLPop(ctx, NotifyPollTimeout, config.Key.AssignmentNotifyQueue()).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var p noticePayload
			if err := json.Unmarshal([]byte(item[1]), &p); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			w.deliver(ctx, &p)
		}
	}
}

func (w *NotifyWorker) deliver(ctx context.Context, p *noticePayload) {
	subject, body := mailer.ComposeAssignmentEmail(
		p.Username, p.ExamTitle, p.DurationMinutes, p.TotalMarks)

	err := w.mail.Send(p.Email, subject, body)
	if err == nil {
		w.log.Info().
			Str("email", p.Email).
			Str("exam", p.ExamTitle).
			Msg("Assignment notification sent")
		return
	}
	if p.Attempts+1 >= NotifyMaxRetries {
		w.log.Error().Err(err).
			Str("email", p.Email).
			Int("attempts", p.Attempts+1).
			Msg("Dropping undeliverable notification")
		return
	}
	w.log.Warn().Err(err).
		Str("email", p.Email).
		Msg("Delivery failed, requeueing")

	p.Attempts++
	raw, _ := json.Marshal(p)
	w.rdb.RPush(ctx, config.Key.AssignmentNotifyQueue(), raw)
}
