package models

import "gorm.io/gorm"

// Client is an organisation being assessed. Projects point at it by Name
// through their ClientRef.
type Client struct {
	gorm.Model
	Name         string `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Industry     string `gorm:"size:100" json:"industry,omitempty"`
	ContactName  string `gorm:"size:255" json:"contactName,omitempty"`
	ContactEmail string `gorm:"size:255" json:"contactEmail,omitempty"`
	Notes        string `gorm:"type:text" json:"notes,omitempty"` // tenant setup, licensing etc.
}
