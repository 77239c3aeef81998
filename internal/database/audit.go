package database

import "pp-governance/internal/models"

// CreateAuditLog writes an audit entry; without a database it does nothing.
func CreateAuditLog(entity, entityID, action, details string) {
	if DB == nil {
		return
	}
	record := models.AuditLog{
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	_ = DB.Create(&record).Error
}
