package model

import (
	"time"
)

// League represents a league entity in the system.
// Matches the leagues table schema. Membership is not stored here: the
// roster is derived from accepted invitations.
type League struct {
	ID        string    `gorm:"primaryKey;column:id;type:uuid" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()" json:"-"`
}

// TableName specifies the table name for GORM.
func (League) TableName() string {
	return "leagues"
}
