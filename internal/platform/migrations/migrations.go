package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the storefront schema.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&cartSlotRecord{})
}

// Cart slot schema mirrors the cart Postgres slot adapter.
type cartSlotRecord struct {
	Key       string    `gorm:"primaryKey;column:slot_key;size:128"`
	Value     string    `gorm:"column:value;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;index"`
}

func (cartSlotRecord) TableName() string { return "cart_slots" }
