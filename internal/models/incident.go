package models

import (
	"time"
)

// Incident is platform-wide; a nil ResolvedAt means it is still active.
type Incident struct {
	BaseModel

	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description,omitempty"`
	Impact      string     `json:"impact,omitempty"`
	StartedAt   time.Time  `gorm:"not null;index" json:"startedAt"`
	ResolvedAt  *time.Time `gorm:"index" json:"resolvedAt"`
}

func (i Incident) Active() bool {
	return i.ResolvedAt == nil
}
