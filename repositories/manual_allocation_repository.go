package repositories

import (
	"time"

	"eyefi-app/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ManualAllocationRepository owns the planner override tables: manual
// allocations, locks, SO priorities and the audit trail. Every mutation
// appends an audit entry.
type ManualAllocationRepository struct {
	db *gorm.DB
}

func NewManualAllocationRepository(db *gorm.DB) *ManualAllocationRepository {
	return &ManualAllocationRepository{db}
}

func (r *ManualAllocationRepository) GetManualAllocations(partNumber string) ([]models.ManualAllocation, error) {
	var allocations []models.ManualAllocation
	err := r.db.
		Where("part_number = ? AND is_active = ?", partNumber, true).
		Order("priority ASC, locked_date DESC").
		Find(&allocations).Error
	return allocations, err
}

func (r *ManualAllocationRepository) CreateManualAllocation(m *models.ManualAllocation) error {
	m.IsActive = true
	if m.LockedDate.IsZero() {
		m.LockedDate = time.Now()
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return tx.Create(&models.AllocationAuditEntry{
			WoNumber:      m.WoNumber,
			SoNumber:      m.SoNumber,
			PartNumber:    m.PartNumber,
			Action:        "MANUAL_ALLOCATION",
			NewAllocation: m.SoNumber,
			Quantity:      m.AllocatedQty,
			UserID:        m.LockedBy,
			Timestamp:     time.Now(),
			Reason:        m.Reason,
		}).Error
	})
}

// Reassign moves a work order from one sales order to another in a single
// transaction: deactivate the old pairing, insert the new one, append the
// audit entry.
func (r *ManualAllocationRepository) Reassign(woNumber, fromSoNumber, toSoNumber, partNumber string, quantity float64, priority int, userID, reason string) error {
	now := time.Now()

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ManualAllocation{}).
			Where("wo_number = ? AND so_number = ? AND part_number = ?", woNumber, fromSoNumber, partNumber).
			Update("is_active", false).Error; err != nil {
			return err
		}

		next := models.ManualAllocation{
			WoNumber:       woNumber,
			SoNumber:       toSoNumber,
			PartNumber:     partNumber,
			AllocatedQty:   quantity,
			AllocationType: "MANUAL",
			Priority:       priority,
			LockedBy:       userID,
			LockedDate:     now,
			Reason:         reason,
			IsActive:       true,
		}
		if err := tx.Create(&next).Error; err != nil {
			return err
		}

		previous := fromSoNumber
		return tx.Create(&models.AllocationAuditEntry{
			WoNumber:           woNumber,
			SoNumber:           toSoNumber,
			PartNumber:         partNumber,
			Action:             "REASSIGN",
			PreviousAllocation: &previous,
			NewAllocation:      toSoNumber,
			Quantity:           quantity,
			UserID:             userID,
			Timestamp:          now,
			Reason:             reason,
		}).Error
	})
}

// Lock upserts the lock row for a pairing; locking twice refreshes the
// holder, date and reason.
func (r *ManualAllocationRepository) Lock(woNumber, soNumber, userID, reason string, lockDate time.Time) error {
	if lockDate.IsZero() {
		lockDate = time.Now()
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		lock := models.AllocationLock{
			WoNumber:   woNumber,
			SoNumber:   soNumber,
			LockedBy:   userID,
			LockedDate: lockDate,
			Reason:     reason,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "wo_number"}, {Name: "so_number"}},
			DoUpdates: clause.AssignmentColumns([]string{"locked_by", "locked_date", "reason"}),
		}).Create(&lock).Error; err != nil {
			return err
		}

		return tx.Create(&models.AllocationAuditEntry{
			WoNumber:      woNumber,
			SoNumber:      soNumber,
			Action:        "LOCK",
			NewAllocation: soNumber,
			UserID:        userID,
			Timestamp:     time.Now(),
			Reason:        reason,
		}).Error
	})
}

func (r *ManualAllocationRepository) Unlock(woNumber, soNumber, userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("wo_number = ? AND so_number = ?", woNumber, soNumber).
			Delete(&models.AllocationLock{}).Error; err != nil {
			return err
		}

		return tx.Create(&models.AllocationAuditEntry{
			WoNumber:      woNumber,
			SoNumber:      soNumber,
			Action:        "UNLOCK",
			NewAllocation: soNumber,
			UserID:        userID,
			Timestamp:     time.Now(),
		}).Error
	})
}

func (r *ManualAllocationRepository) GetLocks() ([]models.AllocationLock, error) {
	var locks []models.AllocationLock
	err := r.db.Find(&locks).Error
	return locks, err
}

func (r *ManualAllocationRepository) GetPriorities() ([]models.SalesOrderPriority, error) {
	var priorities []models.SalesOrderPriority
	err := r.db.Find(&priorities).Error
	return priorities, err
}

// UpdatePriority upserts the planner priority for one sales order.
func (r *ManualAllocationRepository) UpdatePriority(soNumber string, priority int, userID, reason string) error {
	now := time.Now()

	return r.db.Transaction(func(tx *gorm.DB) error {
		row := models.SalesOrderPriority{
			SoNumber:    soNumber,
			Priority:    priority,
			UpdatedBy:   userID,
			UpdatedDate: now,
			Reason:      reason,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "so_number"}},
			DoUpdates: clause.AssignmentColumns([]string{"priority", "updated_by", "updated_date", "reason"}),
		}).Create(&row).Error; err != nil {
			return err
		}

		return tx.Create(&models.AllocationAuditEntry{
			SoNumber:      soNumber,
			Action:        "PRIORITY_CHANGE",
			NewAllocation: soNumber,
			Quantity:      float64(priority),
			UserID:        userID,
			Timestamp:     now,
			Reason:        reason,
		}).Error
	})
}

// AuditFilter narrows the trail query; empty fields are ignored.
type AuditFilter struct {
	PartNumber string
	WoNumber   string
	SoNumber   string
}

func (r *ManualAllocationRepository) GetAuditTrail(filter AuditFilter) ([]models.AllocationAuditEntry, error) {
	query := r.db.Model(&models.AllocationAuditEntry{})

	if filter.PartNumber != "" {
		query = query.Where("part_number = ?", filter.PartNumber)
	}
	if filter.WoNumber != "" {
		query = query.Where("wo_number = ?", filter.WoNumber)
	}
	if filter.SoNumber != "" {
		query = query.Where("so_number = ?", filter.SoNumber)
	}

	var entries []models.AllocationAuditEntry
	err := query.Order("timestamp DESC").Limit(100).Find(&entries).Error
	return entries, err
}

func (r *ManualAllocationRepository) AppendAudit(entry *models.AllocationAuditEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	return r.db.Create(entry).Error
}
