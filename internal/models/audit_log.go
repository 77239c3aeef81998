package models

import "time"

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	Entity   string `gorm:"size:50;not null" json:"entity"` // "project", "question", "client"
	EntityID string `gorm:"size:255" json:"entityId"`
	Action   string `gorm:"size:50;not null" json:"action"` // "create", "answer", "delete" ...
	Details  string `gorm:"type:text" json:"details"`
}
