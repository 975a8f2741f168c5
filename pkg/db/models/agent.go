package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Agent is a schedulable driver in the offer pool. Agents are upserted
// by phone and deactivated rather than deleted.
type Agent struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;type:text;not null"`
	Phone     string    `gorm:"column:phone;type:text;not null;uniqueIndex:idx_agents_phone"`
	Priority  int       `gorm:"column:priority;not null"`
	// No default tag: GORM skips zero-value fields that carry one, and
	// active=false must reach the INSERT.
	Active    bool      `gorm:"column:active;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate mints the id app-side so inserts do not depend on a
// database default.
func (a *Agent) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
