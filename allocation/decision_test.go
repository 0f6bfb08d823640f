package allocation

import "testing"

func TestDecide(t *testing.T) {
	tests := []struct {
		name         string
		status       Status
		totalDemand  float64
		urgentDemand float64
		stock        float64
		want         Category
		wantLight    TrafficLight
	}{
		{"no demand wins over excess", StatusExcess, 0, 0, 0, CategoryNoDemand, LightGray},
		{"matched", StatusMatched, 500, 500, 0, CategoryStockSufficient, LightGreen},
		{"excess with urgent demand", StatusExcess, 150, 150, 200, CategoryUrgentCovered, LightYellow},
		{"excess without urgent demand", StatusExcess, 100, 0, 0, CategoryStockSufficient, LightGreen},
		{"shortage but stock covers urgent", StatusShortage, 300, 100, 120, CategoryUrgentCovered, LightYellow},
		{"urgent shortage", StatusShortage, 150, 150, 0, CategoryUrgentShortage, LightRed},
		{"shortage only in future demand", StatusShortage, 400, 0, 0, CategoryFutureOnly, LightYellow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.status, tt.totalDemand, tt.urgentDemand, tt.stock)
			if got != tt.want {
				t.Errorf("Decide = %v, want %v", got, tt.want)
			}
			if light := Light(got); light != tt.wantLight {
				t.Errorf("Light(%v) = %v, want %v", got, light, tt.wantLight)
			}
		})
	}
}

func TestStatusForGap(t *testing.T) {
	tests := []struct {
		gap  float64
		want Status
	}{
		{0, StatusMatched},
		{5, StatusMatched},
		{-5, StatusMatched},
		{5.5, StatusExcess},
		{-5.5, StatusShortage},
		{200, StatusExcess},
		{-200, StatusShortage},
	}

	for _, tt := range tests {
		if got := statusForGap(tt.gap); got != tt.want {
			t.Errorf("statusForGap(%v) = %v, want %v", tt.gap, got, tt.want)
		}
	}
}

func TestDecisionSummaryCoversAllCategories(t *testing.T) {
	categories := []Category{
		CategoryStockSufficient, CategoryUrgentCovered, CategoryUrgentShortage,
		CategoryFutureOnly, CategoryNoDemand, CategoryManualReview,
	}
	seen := map[string]bool{}
	for _, c := range categories {
		s := DecisionSummary(c)
		if s == "" {
			t.Errorf("DecisionSummary(%v) is empty", c)
		}
		if seen[s] {
			t.Errorf("DecisionSummary(%v) duplicates another category", c)
		}
		seen[s] = true
	}
}
