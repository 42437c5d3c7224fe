package models

const TrafficSourceOnboarding = "onboarding"

type TrafficLog struct {
	BaseModel

	ClientID  uint   `gorm:"not null;index" json:"clientId"`
	ProjectID *uint  `gorm:"index" json:"projectId"`
	Source    string `gorm:"not null" json:"source"`
	Hits      int    `gorm:"not null;default:1" json:"hits"`
}
