package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

var _ ports.Slot = (*Slot)(nil)

// Slot persists cart slots in PostgreSQL using GORM.
type Slot struct {
	db *gorm.DB
}

// NewSlot wires a PostgreSQL-backed slot. Caller manages DB lifecycle and
// schema (see platform/migrations).
func NewSlot(db *gorm.DB) *Slot {
	return &Slot{db: db}
}

// slotRecord maps one key-value slot to a row.
type slotRecord struct {
	Key       string    `gorm:"primaryKey;column:slot_key;size:128"`
	Value     string    `gorm:"column:value;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (slotRecord) TableName() string { return "cart_slots" }

func (s *Slot) Read(ctx context.Context, key string) ([]byte, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var record slotRecord
	if err := s.db.WithContext(ctx).First(&record, "slot_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrSlotNotFound
		}
		return nil, err
	}
	return []byte(record.Value), nil
}

// Write upserts the slot, replacing any previous value.
func (s *Slot) Write(ctx context.Context, key string, value []byte) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	record := slotRecord{Key: key, Value: string(value)}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "slot_key"}},
			DoUpdates: clause.Assignments(map[string]any{
				"value":      record.Value,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error
}

func (s *Slot) Delete(ctx context.Context, key string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&slotRecord{}, "slot_key = ?", key).Error
}

func (s *Slot) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres cart slot not configured")
	}
	return nil
}
