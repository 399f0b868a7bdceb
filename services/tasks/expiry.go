package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const TypeReservationExpire = "reservation:expire"

// ExpirePayload identifies the reservation to reclaim.
type ExpirePayload struct {
	ReservationID string `json:"reservationId"`
}

// NewExpiryTask builds the delayed task that reclaims a reservation still
// pendiente when the payment window closes.
func NewExpiryTask(reservationID string, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(ExpirePayload{ReservationID: reservationID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeReservationExpire, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// Lifecycle is the slice of the reservation service the worker needs.
type Lifecycle interface {
	Expire(ctx context.Context, id string) error
}

// NewExpiryHandler returns the asynq handler for expiry tasks. Expire is a
// guarded transition, so a reservation confirmed in the meantime is left
// alone.
func NewExpiryHandler(svc Lifecycle) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p ExpirePayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("malformed expiry payload: %v: %w", err, asynq.SkipRetry)
		}
		return svc.Expire(ctx, p.ReservationID)
	}
}

// AsynqScheduler enqueues expiry tasks through an asynq client. It satisfies
// the reservation service's ExpiryScheduler.
type AsynqScheduler struct {
	Client *asynq.Client
}

func NewAsynqScheduler(client *asynq.Client) *AsynqScheduler {
	return &AsynqScheduler{Client: client}
}

func (s *AsynqScheduler) ScheduleExpiry(reservationID string, fireAt time.Time) error {
	task, opts, err := NewExpiryTask(reservationID, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.Client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue expiry task: %w", err)
	}
	return nil
}
