package models

type Ticket struct {
	BaseModel

	ClientID  uint   `gorm:"not null;index" json:"clientId"`
	ProjectID *uint  `gorm:"index" json:"projectId"`
	Subject   string `gorm:"not null" json:"subject"`
	Message   string `json:"message"`

	// Relationships
	Client  *Client  `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"client,omitempty"`
	Project *Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"project,omitempty"`
}
