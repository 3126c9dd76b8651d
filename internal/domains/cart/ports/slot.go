package ports

import (
	"context"
	"errors"
)

// ErrSlotNotFound reports that no value has been written to the slot yet.
var ErrSlotNotFound = errors.New("cart slot not found")

// Slot is a named durable key-value entry holding the serialized cart.
// Writes replace the whole value.
type Slot interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
