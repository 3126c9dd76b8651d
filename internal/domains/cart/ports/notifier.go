package ports

import "context"

// Notifier surfaces transient user-facing messages.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// NoopNotifier drops every message.
var NoopNotifier Notifier = noopNotifier{}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, string) {}
