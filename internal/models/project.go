package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProjectRecord is the database row for one assessment project. The whole
// standard/question tree lives in Tree as JSON.
type ProjectRecord struct {
	gorm.Model
	Name      string         `gorm:"size:255;uniqueIndex;not null"`
	ClientRef string         `gorm:"size:255"`
	Active    bool           `gorm:"not null;default:false"`
	Tree      datatypes.JSON `gorm:"type:jsonb"`
}
