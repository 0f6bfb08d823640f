package allocation

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// woTracker is the working copy of one work order during a run. The input
// slice itself is never mutated.
type woTracker struct {
	wo          WorkOrder
	originalQty float64
	remaining   float64
}

type soTracker struct {
	so              SalesOrder
	remainingDemand float64
	stockAllocated  float64
}

// Analyze runs the full allocation for one part: inventory first, then FIFO
// work-order matching, then the status and decision triage. Pure function of
// the input and the clock; running it twice on the same input yields the
// same result.
func Analyze(in Input, now time.Time) Analysis {
	result := Analysis{PartNumber: in.PartNumber}

	workOrders, salesOrders, inventory, warnings := normalize(in)
	result.Warnings = warnings

	// Stable sort keeps input order on equal due dates. The fetch layer
	// orders rows by due date then order number, so runs are deterministic.
	sort.SliceStable(salesOrders, func(i, j int) bool {
		return salesOrders[i].DueDate.Before(salesOrders[j].DueDate)
	})
	sort.SliceStable(workOrders, func(i, j int) bool {
		return workOrders[i].DueDate.Before(workOrders[j].DueDate)
	})

	for _, wo := range workOrders {
		result.TotalWoQuantity += wo.AvailableQty
	}
	for _, so := range salesOrders {
		result.TotalSoQuantity += so.OpenBalance
		switch ClassifyUrgency(so.DueDate, now) {
		case UrgencyUrgent:
			result.UrgentDemand += so.OpenBalance
		case UrgencyFuture:
			result.FutureDemand += so.OpenBalance
		default:
			result.NormalDemand += so.OpenBalance
		}
	}
	for _, inv := range inventory {
		result.TotalAvailableStock += inv.AvailableStock
	}

	result.TotalSupply = result.TotalWoQuantity + result.TotalAvailableStock
	result.Gap = result.TotalSupply - result.TotalSoQuantity
	result.Shortfall = math.Max(0, result.TotalSoQuantity-result.TotalSupply)
	result.StockCoverage = math.Min(result.TotalAvailableStock, result.TotalSoQuantity)
	result.WoNeeded = math.Max(0, result.TotalSoQuantity-result.TotalAvailableStock)

	if result.TotalSupply > 0 {
		pct := result.TotalSoQuantity / result.TotalSupply * 100
		result.UtilizationPercent = &pct
	} else if result.TotalSoQuantity == 0 {
		zero := 0.0
		result.UtilizationPercent = &zero
	}
	// demand > 0 with zero supply leaves utilization nil (N/A), never Inf.

	if len(salesOrders) > 0 {
		critical := salesOrders[0].DueDate
		result.CriticalDueDate = &critical
	}

	soTrackers := make([]*soTracker, 0, len(salesOrders))
	for _, so := range salesOrders {
		soTrackers = append(soTrackers, &soTracker{so: so, remainingDemand: so.OpenBalance})
	}
	woTrackers := make([]*woTracker, 0, len(workOrders))
	for _, wo := range workOrders {
		woTrackers = append(woTrackers, &woTracker{wo: wo, originalQty: wo.AvailableQty, remaining: wo.AvailableQty})
	}

	var pairings []Pairing

	// Inventory pass: every unit on hand is consumed before any work order
	// is matched, walking demand in due-date order.
	remainingStock := result.TotalAvailableStock
	for _, st := range soTrackers {
		if remainingStock <= 0 {
			break
		}
		qty := math.Min(remainingStock, st.remainingDemand)
		if qty <= 0 {
			continue
		}
		remainingStock -= qty
		st.remainingDemand -= qty
		st.stockAllocated = qty

		soDue := st.so.DueDate
		urgency := ClassifyUrgency(soDue, now)
		pairings = append(pairings, Pairing{
			Source:         SourceStock,
			SoNumber:       st.so.Number,
			AllocatedQty:   qty,
			SoDueDate:      &soDue,
			SoQuantity:     st.so.OpenBalance,
			Urgency:        urgency,
			Priority:       urgencyPriority(urgency),
			TimingRisk:     RiskLow,
			Recommendation: stockRecommendation(soDue, now, qty, st.so.OpenBalance),
		})
	}

	// Work-order pass over residual demand, earliest-completing first.
	type woAllocation struct {
		wo             *woTracker
		st             *soTracker
		qty            float64
		remainingAfter float64
	}
	var allocations []woAllocation
	for _, st := range soTrackers {
		for _, wt := range woTrackers {
			if st.remainingDemand <= 0 {
				break
			}
			if wt.remaining <= 0 {
				continue
			}
			qty := math.Min(wt.remaining, st.remainingDemand)
			wt.remaining -= qty
			st.remainingDemand -= qty
			allocations = append(allocations, woAllocation{wo: wt, st: st, qty: qty, remainingAfter: wt.remaining})
		}
	}

	// Recommendation text needs the full multi-WO picture per sales order,
	// so pairings are built after the pass completes.
	perSO := make(map[string]int)
	for _, a := range allocations {
		perSO[a.st.so.Number]++
	}
	seqSoFar := make(map[string]int)
	cumSoFar := make(map[string]float64)
	for _, a := range allocations {
		soNbr := a.st.so.Number
		seqSoFar[soNbr]++
		cumSoFar[soNbr] += a.qty

		woDue := a.wo.wo.DueDate
		soDue := a.st.so.DueDate
		urgency := ClassifyUrgency(soDue, now)
		pairings = append(pairings, Pairing{
			Source:           SourceWorkOrder,
			WoNumber:         a.wo.wo.Number,
			WoStatus:         a.wo.wo.Status,
			SoNumber:         soNbr,
			AllocatedQty:     a.qty,
			WoAvailable:      a.wo.originalQty,
			WoRemainingAfter: a.remainingAfter,
			WoDueDate:        &woDue,
			SoDueDate:        &soDue,
			SoQuantity:       a.st.so.OpenBalance,
			Urgency:          urgency,
			Priority:         urgencyPriority(urgency),
			TimingRisk:       TimingRiskBetween(woDue, soDue),
			Recommendation: woRecommendation(woDue, soDue, now, a.qty, a.st.so.OpenBalance,
				cumSoFar[soNbr], seqSoFar[soNbr], perSO[soNbr]),
		})
	}

	// Leftover capacity becomes excess lines, leftover demand shortage lines.
	for _, wt := range woTrackers {
		if wt.remaining <= 0 {
			continue
		}
		text, risk, priority := excessRecommendation(result.UrgentDemand, result.TotalWoQuantity)
		woDue := wt.wo.DueDate
		pairings = append(pairings, Pairing{
			Source:           SourceExcess,
			WoNumber:         wt.wo.Number,
			WoStatus:         wt.wo.Status,
			AllocatedQty:     0,
			WoAvailable:      wt.originalQty,
			WoRemainingAfter: wt.remaining,
			WoDueDate:        &woDue,
			Priority:         priority,
			TimingRisk:       risk,
			Recommendation:   text,
		})
	}
	for _, st := range soTrackers {
		if st.remainingDemand <= 0 {
			continue
		}
		soDue := st.so.DueDate
		urgency := ClassifyUrgency(soDue, now)
		label, text, risk, priority := shortageLine(urgency, st.remainingDemand, DaysUntil(soDue, now))
		pairings = append(pairings, Pairing{
			Source:         SourceShortage,
			SoNumber:       st.so.Number,
			Label:          label,
			AllocatedQty:   st.remainingDemand,
			SoDueDate:      &soDue,
			SoQuantity:     st.so.OpenBalance,
			Urgency:        urgency,
			Priority:       priority,
			TimingRisk:     risk,
			Recommendation: text,
		})
	}

	result.Pairings = pairings
	result.Status = statusForGap(result.Gap)
	result.Category = Decide(result.Status, result.TotalSoQuantity, result.UrgentDemand, result.TotalAvailableStock)
	result.TrafficLight = Light(result.Category)
	result.DecisionSummary = DecisionSummary(result.Category)

	return result
}

func urgencyPriority(u Urgency) int {
	switch u {
	case UrgencyUrgent:
		return 1
	case UrgencyNormal:
		return 2
	default:
		return 3
	}
}

// normalize copies the input and coerces bad quantities to zero so NaN and
// negative values from the source never reach the arithmetic. Each fix is
// reported as a data-quality warning.
func normalize(in Input) ([]WorkOrder, []SalesOrder, []InventoryRecord, []string) {
	var warnings []string

	clamp := func(v float64, what, ref string) float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			warnings = append(warnings, fmt.Sprintf("%s on %s is not a number, treated as 0", what, ref))
			return 0
		}
		if v < 0 {
			warnings = append(warnings, fmt.Sprintf("%s on %s is negative (%.2f), treated as 0", what, ref, v))
			return 0
		}
		return v
	}

	workOrders := make([]WorkOrder, 0, len(in.WorkOrders))
	for _, wo := range in.WorkOrders {
		wo.OrderedQty = clamp(wo.OrderedQty, "ordered qty", "WO "+wo.Number)
		wo.CompletedQty = clamp(wo.CompletedQty, "completed qty", "WO "+wo.Number)
		if wo.AvailableQty <= 0 || math.IsNaN(wo.AvailableQty) {
			wo.AvailableQty = wo.OrderedQty - wo.CompletedQty
		}
		wo.AvailableQty = clamp(wo.AvailableQty, "available qty", "WO "+wo.Number)
		if wo.AvailableQty > 0 {
			workOrders = append(workOrders, wo)
		}
	}

	salesOrders := make([]SalesOrder, 0, len(in.SalesOrders))
	for _, so := range in.SalesOrders {
		so.OpenBalance = clamp(so.OpenBalance, "open balance", "SO "+so.Number)
		if so.OpenBalance > 0 {
			salesOrders = append(salesOrders, so)
		}
	}

	inventory := make([]InventoryRecord, 0, len(in.Inventory))
	for _, inv := range in.Inventory {
		if inv.AvailableStock == 0 && inv.QtyOnHand > 0 {
			inv.AvailableStock = inv.QtyOnHand - inv.QtyAllocated
		}
		inv.AvailableStock = clamp(inv.AvailableStock, "available stock", "location "+inv.Location)
		if inv.AvailableStock > 0 {
			inventory = append(inventory, inv)
		}
	}

	return workOrders, salesOrders, inventory, warnings
}
