package models

import (
	"time"
)

// User is an account row. Glucose entries reference it by username, which is
// also the primary key; there is no separate surrogate id.
type User struct {
	Username       string    `gorm:"size:50;primarykey" json:"username"`
	PasswordHash   string    `gorm:"not null" json:"-"`
	PreferredUnits string    `gorm:"size:10;not null;default:'mg/dL'" json:"preferred_units"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
