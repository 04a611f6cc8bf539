package store

import (
	"context"
	"errors"
	"time"

	"taskflow/logging"
	"taskflow/model"

	"github.com/sony/gobreaker"
)

// ErrUnavailable is returned while the breaker is open.
var ErrUnavailable = errors.New("store unavailable")

type BreakerSettings struct {
	MaxFailures uint32
	OpenTimeout time.Duration
}

// Breaker fails fast once the backing store has failed MaxFailures times in
// a row. Domain outcomes (not found, duplicate, version conflict) do not
// count as failures. Calls are never retried.
type Breaker struct {
	next Store
	cb   *gobreaker.CircuitBreaker
}

func NewBreaker(next Store, settings BreakerSettings) *Breaker {
	maxFailures := settings.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}
	return &Breaker{
		next: next,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "document-store",
			MaxRequests: 1,
			Timeout:     settings.OpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxFailures
			},
			IsSuccessful: func(err error) bool {
				return err == nil ||
					errors.Is(err, ErrNotFound) ||
					errors.Is(err, ErrDuplicate) ||
					errors.Is(err, ErrVersionConflict) ||
					errors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logging.Logger.Warnf("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: circuit breaker %q changed from %s to %s", name, from, to)
			},
		}),
	}
}

func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

func (b *Breaker) run(fn func() error) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrUnavailable
	}
	return err
}

func breakerCall[T any](b *Breaker, fn func() (T, error)) (T, error) {
	var out T
	err := b.run(func() error {
		var err error
		out, err = fn()
		return err
	})
	return out, err
}

func (b *Breaker) Close(ctx context.Context) error {
	return b.next.Close(ctx)
}

func (b *Breaker) CreateUser(ctx context.Context, user *model.User) error {
	return b.run(func() error { return b.next.CreateUser(ctx, user) })
}

func (b *Breaker) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return breakerCall(b, func() (*model.User, error) { return b.next.GetUserByID(ctx, id) })
}

func (b *Breaker) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return breakerCall(b, func() (*model.User, error) { return b.next.GetUserByEmail(ctx, email) })
}

func (b *Breaker) GetUsersByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	return breakerCall(b, func() ([]model.User, error) { return b.next.GetUsersByIDs(ctx, ids) })
}

func (b *Breaker) ListUsersByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	return breakerCall(b, func() ([]model.User, error) { return b.next.ListUsersByRole(ctx, role) })
}

func (b *Breaker) UpdateUser(ctx context.Context, user *model.User) error {
	return b.run(func() error { return b.next.UpdateUser(ctx, user) })
}

func (b *Breaker) CreateTask(ctx context.Context, task *model.Task) error {
	return b.run(func() error { return b.next.CreateTask(ctx, task) })
}

func (b *Breaker) GetTask(ctx context.Context, id string) (*model.Task, error) {
	return breakerCall(b, func() (*model.Task, error) { return b.next.GetTask(ctx, id) })
}

func (b *Breaker) ListTasks(ctx context.Context, q TaskQuery) ([]model.Task, error) {
	return breakerCall(b, func() ([]model.Task, error) { return b.next.ListTasks(ctx, q) })
}

func (b *Breaker) CountTasks(ctx context.Context, f TaskFilter) (int64, error) {
	return breakerCall(b, func() (int64, error) { return b.next.CountTasks(ctx, f) })
}

func (b *Breaker) GroupCount(ctx context.Context, f TaskFilter, field GroupField) (map[string]int64, error) {
	return breakerCall(b, func() (map[string]int64, error) { return b.next.GroupCount(ctx, f, field) })
}

func (b *Breaker) UpdateTask(ctx context.Context, task *model.Task) error {
	return b.run(func() error { return b.next.UpdateTask(ctx, task) })
}

func (b *Breaker) DeleteTask(ctx context.Context, id string) error {
	return b.run(func() error { return b.next.DeleteTask(ctx, id) })
}
