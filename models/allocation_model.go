package models

import (
	"time"

	"eyefi-app/controllers/idgen"
	"eyefi-app/types"

	"gorm.io/gorm"
)

// ManualAllocation is a planner-made WO-to-SO assignment. It overrides the
// automatic FIFO result for that pairing until deactivated. Reassigning
// deactivates the old row and inserts a new one so history is kept.
type ManualAllocation struct {
	ID             types.SnowflakeID `json:"id" gorm:"primaryKey"`
	WoNumber       string            `json:"woNumber" gorm:"index"`
	SoNumber       string            `json:"soNumber" gorm:"index"`
	PartNumber     string            `json:"partNumber" gorm:"index"`
	AllocatedQty   float64           `json:"allocatedQuantity"`
	AllocationType string            `json:"allocationType"`
	Priority       int               `json:"priority"`
	LockedBy       string            `json:"lockedBy"`
	LockedDate     time.Time         `json:"lockedDate"`
	Reason         string            `json:"reason"`
	IsActive       bool              `json:"isActive" gorm:"default:true"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

func (m *ManualAllocation) BeforeCreate(tx *gorm.DB) error {
	if m.ID == 0 {
		m.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return nil
}

// AllocationLock pins one WO/SO pairing so the automatic pass cannot move
// it. One row per pairing; locking again updates the existing row.
type AllocationLock struct {
	ID         types.SnowflakeID `json:"id" gorm:"primaryKey"`
	WoNumber   string            `json:"woNumber" gorm:"uniqueIndex:idx_lock_pairing"`
	SoNumber   string            `json:"soNumber" gorm:"uniqueIndex:idx_lock_pairing"`
	LockedBy   string            `json:"lockedBy"`
	LockedDate time.Time         `json:"lockedDate"`
	Reason     string            `json:"reason"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

func (l *AllocationLock) BeforeCreate(tx *gorm.DB) error {
	if l.ID == 0 {
		l.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return nil
}

// SalesOrderPriority is a planner override of the urgency-derived priority
// for one sales order. One row per SO.
type SalesOrderPriority struct {
	ID          types.SnowflakeID `json:"id" gorm:"primaryKey"`
	SoNumber    string            `json:"soNumber" gorm:"uniqueIndex"`
	Priority    int               `json:"priority"`
	UpdatedBy   string            `json:"updatedBy"`
	UpdatedDate time.Time         `json:"updatedDate"`
	Reason      string            `json:"reason"`
	CreatedAt   time.Time         `json:"createdAt"`
}

func (p *SalesOrderPriority) BeforeCreate(tx *gorm.DB) error {
	if p.ID == 0 {
		p.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return nil
}

// AllocationAuditEntry records every allocation mutation: manual creates,
// reassignments, locks, unlocks and priority changes.
type AllocationAuditEntry struct {
	ID                 types.SnowflakeID `json:"id" gorm:"primaryKey"`
	WoNumber           string            `json:"woNumber" gorm:"index"`
	SoNumber           string            `json:"soNumber" gorm:"index"`
	PartNumber         string            `json:"partNumber" gorm:"index"`
	Action             string            `json:"action"`
	PreviousAllocation *string           `json:"previousAllocation"`
	NewAllocation      string            `json:"newAllocation"`
	Quantity           float64           `json:"quantity"`
	UserID             string            `json:"userId"`
	Timestamp          time.Time         `json:"timestamp" gorm:"index"`
	Reason             string            `json:"reason"`
}

func (a *AllocationAuditEntry) BeforeCreate(tx *gorm.DB) error {
	if a.ID == 0 {
		a.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return nil
}
