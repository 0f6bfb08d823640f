package migration

import (
	"eyefi-app/models"

	"gorm.io/gorm"
)

// Migrate owns the app database schema: users, sessions and the planner
// override tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserSession{},
		&models.LoginLog{},
		&models.ManualAllocation{},
		&models.AllocationLock{},
		&models.SalesOrderPriority{},
		&models.AllocationAuditEntry{},
	)
}

// MigrateErpMirror builds the QAD mirror tables. Only used in dev and demo
// environments; in production the replication job owns this schema.
func MigrateErpMirror(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.WoMstr{},
		&models.SodDet{},
		&models.SoMstr{},
		&models.LdDet{},
		&models.PtMstr{},
	)
}
