package models

import (
	"time"

	"github.com/google/uuid"
)

// GlucoseEntry is one logged measurement. BloodSugar is always stored in
// canonical mg/dL regardless of the unit the caller logged in; Date is the
// user-supplied observation time, CreatedAt the system-assigned storage time.
// Entries are immutable except for deletion by id.
type GlucoseEntry struct {
	EntryID    uuid.UUID `gorm:"type:varchar(36);primarykey" json:"entry_id"`
	Username   string    `gorm:"size:50;not null;index" json:"username"`
	BloodSugar float64   `gorm:"not null" json:"blood_sugar"`
	Meal       string    `gorm:"type:text" json:"meal"`
	Exercise   string    `gorm:"type:text" json:"exercise"`
	Date       time.Time `gorm:"not null;index" json:"date"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName keeps the historical table name used by existing deployments.
func (GlucoseEntry) TableName() string {
	return "diabetes_entries"
}
