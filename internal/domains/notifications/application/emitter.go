package application

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/notifications/domain"
)

// Handler receives the ordered set of active notifications after every
// change. Handlers run on the goroutine that caused the change and must not
// block.
type Handler func(active []domain.Notification)

// AfterFunc schedules f once after d.
type AfterFunc func(d time.Duration, f func())

// Emitter is a publish/subscribe channel for transient notifications. Each
// published notification expires after a fixed delay whether or not anyone
// observed it.
type Emitter struct {
	mu          sync.Mutex
	active      []domain.Notification
	nextID      int64
	subscribers []subscription
	nextSubID   int64

	ttl       time.Duration
	afterFunc AfterFunc
	now       func() time.Time
	logger    *slog.Logger
}

type subscription struct {
	id      int64
	handler Handler
}

type Option func(*Emitter)

// WithTTL overrides the expiry delay.
func WithTTL(ttl time.Duration) Option {
	return func(e *Emitter) {
		if ttl > 0 {
			e.ttl = ttl
		}
	}
}

// WithAfterFunc overrides the expiry scheduler, mainly for tests.
func WithAfterFunc(fn AfterFunc) Option {
	return func(e *Emitter) {
		if fn != nil {
			e.afterFunc = fn
		}
	}
}

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Emitter) {
		if now != nil {
			e.now = now
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Emitter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func NewEmitter(opts ...Option) *Emitter {
	e := &Emitter{
		ttl:       domain.DefaultTTL,
		afterFunc: func(d time.Duration, f func()) { time.AfterFunc(d, f) },
		now:       time.Now,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Publish registers a notification and schedules its expiry.
func (e *Emitter) Publish(message string) domain.Notification {
	e.mu.Lock()
	e.nextID++
	n := domain.Notification{ID: e.nextID, Message: message, CreatedAt: e.now()}
	e.active = append(e.active, n)
	active, handlers := e.stateLocked()
	e.mu.Unlock()

	e.logger.Debug("notification published", slog.Int64("notification.id", n.ID), slog.String("notification.message", message))
	dispatch(handlers, active)
	e.afterFunc(e.ttl, func() { e.Expire(n.ID) })
	return n
}

// Notify publishes message. It lets the emitter serve as the cart and
// checkout notifier.
func (e *Emitter) Notify(_ context.Context, message string) {
	e.Publish(message)
}

// Expire removes the notification with id. Removing an unknown or already
// expired id is a no-op and does not notify subscribers.
func (e *Emitter) Expire(id int64) {
	e.mu.Lock()
	index := -1
	for i, n := range e.active {
		if n.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		e.mu.Unlock()
		return
	}
	e.active = append(e.active[:index:index], e.active[index+1:]...)
	active, handlers := e.stateLocked()
	e.mu.Unlock()

	e.logger.Debug("notification expired", slog.Int64("notification.id", id))
	dispatch(handlers, active)
}

// Active returns the live notifications in insertion order.
func (e *Emitter) Active() []domain.Notification {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneNotifications(e.active)
}

// Subscribe registers handler and immediately hands it the current set. The
// returned func unsubscribes; calling it more than once is safe.
func (e *Emitter) Subscribe(handler Handler) (unsubscribe func()) {
	if handler == nil {
		return func() {}
	}
	e.mu.Lock()
	e.nextSubID++
	id := e.nextSubID
	e.subscribers = append(e.subscribers, subscription{id: id, handler: handler})
	active := cloneNotifications(e.active)
	e.mu.Unlock()

	handler(active)

	var once sync.Once
	return func() {
		once.Do(func() { e.unsubscribe(id) })
	}
}

// Subscribers reports how many handlers are registered.
func (e *Emitter) Subscribers() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.subscribers)
}

func (e *Emitter) unsubscribe(id int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, sub := range e.subscribers {
		if sub.id == id {
			e.subscribers = append(e.subscribers[:i:i], e.subscribers[i+1:]...)
			return
		}
	}
}

func (e *Emitter) stateLocked() ([]domain.Notification, []Handler) {
	handlers := make([]Handler, 0, len(e.subscribers))
	for _, sub := range e.subscribers {
		handlers = append(handlers, sub.handler)
	}
	return cloneNotifications(e.active), handlers
}

func dispatch(handlers []Handler, active []domain.Notification) {
	for _, handler := range handlers {
		handler(cloneNotifications(active))
	}
}

func cloneNotifications(in []domain.Notification) []domain.Notification {
	out := make([]domain.Notification, len(in))
	copy(out, in)
	return out
}
