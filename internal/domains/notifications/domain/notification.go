package domain

import "time"

// DefaultTTL is how long a notification stays active.
const DefaultTTL = 2600 * time.Millisecond

// Notification is a transient user-facing message. Identical messages
// published twice are tracked as two notifications.
type Notification struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
