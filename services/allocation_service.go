package services

import (
	"time"

	"eyefi-app/allocation"
	"eyefi-app/gridrows"
	"eyefi-app/models"
)

// OrderSource is the slice of the order repository the service needs.
type OrderSource interface {
	GetPartsWithOrders() ([]string, error)
	GetWorkOrders(partNumbers []string) (map[string][]allocation.WorkOrder, error)
	GetSalesOrders(partNumbers []string) (map[string][]allocation.SalesOrder, error)
	GetInventory(partNumbers []string) (map[string][]allocation.InventoryRecord, error)
}

// OverrideSource supplies planner locks, manual allocations and sales
// order priorities.
type OverrideSource interface {
	GetLocks() ([]models.AllocationLock, error)
	GetManualAllocations(partNumber string) ([]models.ManualAllocation, error)
	GetPriorities() ([]models.SalesOrderPriority, error)
}

// AllocationService runs the engine over ERP data and shapes the result
// for the dashboard.
type AllocationService struct {
	orders    OrderSource
	overrides OverrideSource
}

func NewAllocationService(orders OrderSource, overrides OverrideSource) *AllocationService {
	return &AllocationService{orders: orders, overrides: overrides}
}

// PartAnalysis bundles an analysis with the order and inventory rows it
// was computed from, so a detail view shows the same snapshot the engine
// saw.
type PartAnalysis struct {
	Analysis    allocation.Analysis          `json:"analysis"`
	WorkOrders  []allocation.WorkOrder       `json:"workOrders"`
	SalesOrders []allocation.SalesOrder      `json:"salesOrders"`
	Inventory   []allocation.InventoryRecord `json:"inventory"`
}

// AnalyzePartsWithSources fetches supply and demand for the given parts
// once, runs the allocator on each, and returns both the analyses and
// the rows they were computed from. Parts with no rows at all still get
// an analysis so the caller sees NO_DEMAND instead of a hole.
func (s *AllocationService) AnalyzePartsWithSources(partNumbers []string, now time.Time) ([]PartAnalysis, error) {
	workOrders, err := s.orders.GetWorkOrders(partNumbers)
	if err != nil {
		return nil, err
	}
	salesOrders, err := s.orders.GetSalesOrders(partNumbers)
	if err != nil {
		return nil, err
	}
	inventory, err := s.orders.GetInventory(partNumbers)
	if err != nil {
		return nil, err
	}

	results := make([]PartAnalysis, 0, len(partNumbers))
	for _, part := range partNumbers {
		results = append(results, PartAnalysis{
			Analysis: allocation.Analyze(allocation.Input{
				PartNumber:  part,
				WorkOrders:  workOrders[part],
				SalesOrders: salesOrders[part],
				Inventory:   inventory[part],
			}, now),
			WorkOrders:  workOrders[part],
			SalesOrders: salesOrders[part],
			Inventory:   inventory[part],
		})
	}

	return results, nil
}

// AnalyzeParts is AnalyzePartsWithSources keeping only the analyses.
func (s *AllocationService) AnalyzeParts(partNumbers []string, now time.Time) ([]allocation.Analysis, error) {
	results, err := s.AnalyzePartsWithSources(partNumbers, now)
	if err != nil {
		return nil, err
	}
	analyses := make([]allocation.Analysis, 0, len(results))
	for _, r := range results {
		analyses = append(analyses, r.Analysis)
	}
	return analyses, nil
}

// AnalyzeAll runs the engine over every part with open orders.
func (s *AllocationService) AnalyzeAll(now time.Time) ([]allocation.Analysis, error) {
	parts, err := s.orders.GetPartsWithOrders()
	if err != nil {
		return nil, err
	}
	return s.AnalyzeParts(parts, now)
}

// BuildTable produces the master-detail grid for the given parts, with
// planner locks and manual allocations marked on the detail rows.
func (s *AllocationService) BuildTable(partNumbers []string, now time.Time) ([]gridrows.MasterRow, error) {
	analyses, err := s.AnalyzeParts(partNumbers, now)
	if err != nil {
		return nil, err
	}

	overrides, soPriority, err := s.collectOverrides(partNumbers)
	if err != nil {
		return nil, err
	}

	return gridrows.Build(analyses, overrides, soPriority), nil
}

// BuildFullTable is BuildTable over every part with open orders.
func (s *AllocationService) BuildFullTable(now time.Time) ([]gridrows.MasterRow, error) {
	parts, err := s.orders.GetPartsWithOrders()
	if err != nil {
		return nil, err
	}
	return s.BuildTable(parts, now)
}

func (s *AllocationService) collectOverrides(partNumbers []string) (map[string]gridrows.Override, map[string]int, error) {
	if s.overrides == nil {
		return nil, nil, nil
	}

	result := make(map[string]gridrows.Override)

	locks, err := s.overrides.GetLocks()
	if err != nil {
		return nil, nil, err
	}
	for _, lock := range locks {
		key := gridrows.OverrideKey(lock.WoNumber, lock.SoNumber)
		ov := result[key]
		ov.Locked = true
		result[key] = ov
	}

	for _, part := range partNumbers {
		manuals, err := s.overrides.GetManualAllocations(part)
		if err != nil {
			return nil, nil, err
		}
		for _, m := range manuals {
			key := gridrows.OverrideKey(m.WoNumber, m.SoNumber)
			ov := result[key]
			ov.Manual = true
			ov.Qty = m.AllocatedQty
			ov.Priority = m.Priority
			result[key] = ov
		}
	}

	priorities, err := s.overrides.GetPriorities()
	if err != nil {
		return nil, nil, err
	}
	soPriority := make(map[string]int, len(priorities))
	for _, p := range priorities {
		soPriority[p.SoNumber] = p.Priority
	}

	return result, soPriority, nil
}

// UrgentShortage is one red part in the monitor report.
type UrgentShortage struct {
	PartNumber    string
	Shortfall     float64
	UrgentDemand  float64
	EarliestDue   *time.Time
	DecisionLabel string
}

// FindUrgentShortages runs the engine over all parts and keeps the ones
// that classify URGENT_SHORTAGE, for the alert mail.
func (s *AllocationService) FindUrgentShortages(now time.Time) ([]UrgentShortage, error) {
	analyses, err := s.AnalyzeAll(now)
	if err != nil {
		return nil, err
	}

	var shortages []UrgentShortage
	for _, a := range analyses {
		if a.Category != allocation.CategoryUrgentShortage {
			continue
		}
		shortages = append(shortages, UrgentShortage{
			PartNumber:    a.PartNumber,
			Shortfall:     a.Shortfall,
			UrgentDemand:  a.UrgentDemand,
			EarliestDue:   a.CriticalDueDate,
			DecisionLabel: a.DecisionSummary,
		})
	}

	return shortages, nil
}
