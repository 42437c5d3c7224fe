package models

type Project struct {
	BaseModel

	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Link        string `json:"link,omitempty"`
	ClientID    uint   `gorm:"not null;index" json:"clientId"`

	// Relationships
	Client *Client `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"client,omitempty"`
}
