package allocation

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestClassifyUrgency(t *testing.T) {
	now := date("2024-01-01")

	tests := []struct {
		name string
		due  time.Time
		want Urgency
	}{
		{"due today", date("2024-01-01"), UrgencyUrgent},
		{"overdue", date("2023-12-01"), UrgencyUrgent},
		{"exactly 30 days", date("2024-01-31"), UrgencyUrgent},
		{"31 days", date("2024-02-01"), UrgencyNormal},
		{"exactly 180 days", now.AddDate(0, 0, 180), UrgencyNormal},
		{"181 days", now.AddDate(0, 0, 181), UrgencyFuture},
		{"next year", date("2025-06-01"), UrgencyFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyUrgency(tt.due, now); got != tt.want {
				t.Errorf("ClassifyUrgency(%v) = %v, want %v", tt.due, got, tt.want)
			}
		})
	}
}

func TestDaysUntilRoundsUp(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	due := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	// 36 hours rounds up to 2 whole days.
	if got := DaysUntil(due, now); got != 2 {
		t.Errorf("DaysUntil = %d, want 2", got)
	}
}

func TestTimingRiskBetween(t *testing.T) {
	tests := []struct {
		name  string
		woDue string
		soDue string
		want  TimingRisk
	}{
		{"wo after so", "2024-01-20", "2024-01-10", RiskHigh},
		{"same day", "2024-01-10", "2024-01-10", RiskMedium},
		{"six days buffer", "2024-01-10", "2024-01-16", RiskMedium},
		{"seven days buffer", "2024-01-10", "2024-01-17", RiskLow},
		{"wide buffer", "2024-01-10", "2024-03-01", RiskLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimingRiskBetween(date(tt.woDue), date(tt.soDue)); got != tt.want {
				t.Errorf("TimingRiskBetween(%s, %s) = %v, want %v", tt.woDue, tt.soDue, got, tt.want)
			}
		})
	}
}
