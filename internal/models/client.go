package models

type Client struct {
	BaseModel

	Name      string  `gorm:"not null" json:"name"`
	Website   string  `json:"website,omitempty"`
	LogoURL   string  `json:"logoUrl,omitempty"`
	MonitorID *string `gorm:"index" json:"monitorId"` // set only after the uptime vendor confirmed the monitor
}
