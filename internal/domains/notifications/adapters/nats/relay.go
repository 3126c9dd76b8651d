package nats

import (
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/notifications/domain"
)

// DefaultSubject is where active notification sets are published.
const DefaultSubject = "storefront.notifications"

// Publisher is the subset of *nats.Conn the relay needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Relay forwards every change of the active notification set to a NATS
// subject so out-of-process displays can render it. Publish failures are
// logged and dropped.
type Relay struct {
	publisher Publisher
	subject   string
	logger    *slog.Logger
}

// Envelope is the JSON payload sent on each change.
type Envelope struct {
	Active []domain.Notification `json:"active"`
	SentAt time.Time             `json:"sentAt"`
}

func NewRelay(publisher Publisher, subject string, logger *slog.Logger) *Relay {
	if subject == "" {
		subject = DefaultSubject
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Relay{publisher: publisher, subject: subject, logger: logger}
}

// Handle matches the emitter's subscriber signature.
func (r *Relay) Handle(active []domain.Notification) {
	if r == nil || r.publisher == nil {
		return
	}
	payload, err := json.Marshal(Envelope{Active: active, SentAt: time.Now().UTC()})
	if err != nil {
		r.logger.Warn("failed to encode notifications", slog.String("error", err.Error()))
		return
	}
	if err := r.publisher.Publish(r.subject, payload); err != nil {
		r.logger.Warn("failed to relay notifications",
			slog.String("nats.subject", r.subject), slog.String("error", err.Error()))
	}
}
