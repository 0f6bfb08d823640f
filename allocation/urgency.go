package allocation

import (
	"math"
	"time"
)

const (
	urgentThresholdDays = 30
	futureThresholdDays = 180
)

// DaysUntil returns whole days from now until due, ties rounded up.
func DaysUntil(due, now time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}

// ClassifyUrgency buckets a due date relative to now: due within 30 days is
// URGENT, within 180 days NORMAL, beyond that FUTURE.
func ClassifyUrgency(due, now time.Time) Urgency {
	days := DaysUntil(due, now)
	switch {
	case days <= urgentThresholdDays:
		return UrgencyUrgent
	case days <= futureThresholdDays:
		return UrgencyNormal
	default:
		return UrgencyFuture
	}
}

// TimingRiskBetween rates a pairing by the buffer between work order
// completion and sales order due date.
func TimingRiskBetween(woDue, soDue time.Time) TimingRisk {
	days := int(math.Floor(soDue.Sub(woDue).Hours() / 24))
	switch {
	case days < 0:
		return RiskHigh
	case days < 7:
		return RiskMedium
	default:
		return RiskLow
	}
}
