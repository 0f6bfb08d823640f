package allocation

// Decide maps the computed aggregates to a triage category. It takes the
// aggregates instead of re-deriving them so the analysis and the decision
// can never disagree. Precedence: no demand, then matched, then excess,
// then the shortage tiers.
func Decide(status Status, totalDemand, urgentDemand, availableStock float64) Category {
	if totalDemand == 0 {
		return CategoryNoDemand
	}

	switch status {
	case StatusMatched:
		return CategoryStockSufficient
	case StatusExcess:
		if urgentDemand > 0 {
			return CategoryUrgentCovered
		}
		return CategoryStockSufficient
	case StatusShortage:
		if urgentDemand > 0 && availableStock >= urgentDemand {
			return CategoryUrgentCovered
		}
		if urgentDemand > 0 {
			return CategoryUrgentShortage
		}
		return CategoryFutureOnly
	}

	return CategoryManualReview
}

// Light maps a decision category to its dashboard traffic light.
func Light(category Category) TrafficLight {
	switch category {
	case CategoryStockSufficient:
		return LightGreen
	case CategoryUrgentCovered, CategoryFutureOnly:
		return LightYellow
	case CategoryUrgentShortage:
		return LightRed
	default:
		return LightGray
	}
}

// DecisionSummary is the one-line explanation shown next to the traffic
// light on the dashboard.
func DecisionSummary(category Category) string {
	switch category {
	case CategoryStockSufficient:
		return "COVERED: supply sufficient for all orders"
	case CategoryUrgentCovered:
		return "PARTIAL: stock covers urgent demand, plan work orders for the rest"
	case CategoryUrgentShortage:
		return "CRITICAL: urgent work order needed immediately"
	case CategoryFutureOnly:
		return "PLANNED: schedule work orders closer to due dates"
	case CategoryNoDemand:
		return "IDLE: no open demand, review existing work orders"
	default:
		return "REVIEW: manual analysis required"
	}
}

// statusForGap classifies supply minus demand inside the tolerance band.
func statusForGap(gap float64) Status {
	switch {
	case gap < -GapTolerance:
		return StatusShortage
	case gap > GapTolerance:
		return StatusExcess
	default:
		return StatusMatched
	}
}
