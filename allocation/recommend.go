package allocation

import (
	"fmt"
	"math"
	"time"
)

// woRecommendation explains one work-order-to-sales-order pairing: timing
// buffer, urgency tier, and the multi-WO fulfillment context when one sales
// order is fed by several work orders.
func woRecommendation(woDue, soDue time.Time, now time.Time, allocated, soNeed, cumulative float64, seq, total int) string {
	urgency := ClassifyUrgency(soDue, now)
	buffer := int(math.Floor(soDue.Sub(woDue).Hours() / 24))
	daysUntilDue := DaysUntil(soDue, now)

	var base string
	switch urgency {
	case UrgencyUrgent:
		switch {
		case buffer < 0:
			base = fmt.Sprintf("CRITICAL: work order completes %d days after an urgent order is due", -buffer)
		case buffer < 3:
			base = fmt.Sprintf("URGENT: very tight timing, only %d days buffer on an urgent order", buffer)
		default:
			base = fmt.Sprintf("URGENT: high priority, order due in %d days with %d days buffer", daysUntilDue, buffer)
		}
	case UrgencyFuture:
		base = fmt.Sprintf("FUTURE: order not due for %d days, production can be delayed", daysUntilDue)
	default:
		switch {
		case buffer >= 14:
			base = fmt.Sprintf("Good planning: work order completes %d days early", buffer)
		case buffer >= 7:
			base = fmt.Sprintf("Adequate timing: %d days buffer", buffer)
		case buffer >= 0:
			base = fmt.Sprintf("Tight timing: only %d days buffer", buffer)
		default:
			base = fmt.Sprintf("RISK: work order completes %d days late", -buffer)
		}
	}

	if total > 1 && soNeed > 0 {
		pct := int(math.Round(cumulative / soNeed * 100))
		base += fmt.Sprintf(" | Multi-WO: part %d of %d, %.0f/%.0f units (%d%%) of SO demand covered",
			seq, total, cumulative, soNeed, pct)
	}

	return base
}

// stockRecommendation explains an on-hand inventory allocation.
func stockRecommendation(soDue, now time.Time, allocated, soNeed float64) string {
	urgency := ClassifyUrgency(soDue, now)
	daysUntilDue := DaysUntil(soDue, now)

	if allocated >= soNeed {
		if urgency == UrgencyUrgent {
			return fmt.Sprintf("STOCK COVERS: %.0f units on hand fulfill this urgent order, no work order needed", allocated)
		}
		return fmt.Sprintf("STOCK COVERS: %.0f units on hand fulfill this order due in %d days", allocated, daysUntilDue)
	}
	return fmt.Sprintf("STOCK PARTIAL: %.0f of %.0f units covered from stock, work order needed for the rest", allocated, soNeed)
}

// excessRecommendation explains leftover work-order capacity in the context
// of the part's overall urgency mix.
func excessRecommendation(urgentDemand, totalWoCapacity float64) (string, TimingRisk, int) {
	switch {
	case urgentDemand > totalWoCapacity:
		return "CRITICAL: urgent orders need this capacity, prioritize production", RiskHigh, 1
	case urgentDemand > 0:
		return "Good capacity for urgent orders, proceed with production", RiskMedium, 2
	default:
		return "Only future orders in pipeline, consider delaying production", RiskLow, 3
	}
}

// shortageLine tags and explains unmet sales order demand.
func shortageLine(urgency Urgency, qty float64, daysUntilDue int) (label, text string, risk TimingRisk, priority int) {
	switch urgency {
	case UrgencyUrgent:
		return "URGENT SHORTAGE",
			fmt.Sprintf("CRITICAL: need %.0f units in %d days, expedite production", qty, daysUntilDue),
			RiskHigh, 1
	case UrgencyFuture:
		return "FUTURE NEED",
			fmt.Sprintf("FUTURE PLANNING: %.0f units needed in %d days, schedule when capacity allows", qty, daysUntilDue),
			RiskLow, 3
	default:
		return "SHORTAGE",
			fmt.Sprintf("Plan production of %.0f units for delivery in %d days", qty, daysUntilDue),
			RiskMedium, 2
	}
}
