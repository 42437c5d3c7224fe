package models

import (
	"gorm.io/datatypes"
)

const (
	EventClientCreated    = "client.created"
	EventProjectCreated   = "project.created"
	EventTrafficSeeded    = "traffic.seeded"
	EventIncidentOpened   = "incident.opened"
	EventTicketCreated    = "ticket.created"
	EventMonitorCreated   = "monitor.created"
	EventIncidentResolved = "incident.resolved"
)

// TimelineEvent is an append-only audit record. It has no foreign key
// constraints; events outlive the rows they mention.
type TimelineEvent struct {
	BaseModel

	ClientID   uint           `gorm:"not null;index" json:"clientId"`
	ProjectID  *uint          `gorm:"index" json:"projectId"`
	IncidentID *uint          `gorm:"index" json:"incidentId"`
	Type       string         `gorm:"not null;index" json:"type"`
	Title      string         `gorm:"not null" json:"title"`
	Details    string         `json:"details"`
	Metadata   datatypes.JSON `json:"metadata,omitempty"`
}
