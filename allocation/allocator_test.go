package allocation

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func wo(nbr string, qty float64, due string) WorkOrder {
	return WorkOrder{Number: nbr, OrderedQty: qty, AvailableQty: qty, DueDate: date(due), Status: "R"}
}

func so(nbr string, open float64, due string) SalesOrder {
	return SalesOrder{Number: nbr, OrderedQty: open, OpenBalance: open, DueDate: date(due)}
}

func stock(qty float64) []InventoryRecord {
	if qty == 0 {
		return nil
	}
	return []InventoryRecord{{Location: "100", QtyOnHand: qty, AvailableStock: qty}}
}

func pairingsBySource(a Analysis, src Source) []Pairing {
	var out []Pairing
	for _, p := range a.Pairings {
		if p.Source == src {
			out = append(out, p)
		}
	}
	return out
}

// Single work order exactly covering a single sales order.
func TestAnalyzeExactMatch(t *testing.T) {
	a := Analyze(Input{
		PartNumber:  "P1",
		WorkOrders:  []WorkOrder{wo("WO1", 500, "2024-01-10")},
		SalesOrders: []SalesOrder{so("SO1", 500, "2024-01-20")},
	}, testNow)

	if a.Status != StatusMatched {
		t.Errorf("status = %v, want MATCHED", a.Status)
	}
	if a.Category != CategoryStockSufficient || a.TrafficLight != LightGreen {
		t.Errorf("decision = %v/%v, want STOCK_SUFFICIENT/GREEN", a.Category, a.TrafficLight)
	}

	matches := pairingsBySource(a, SourceWorkOrder)
	if len(matches) != 1 {
		t.Fatalf("got %d work order pairings, want 1", len(matches))
	}
	p := matches[0]
	if p.WoNumber != "WO1" || p.SoNumber != "SO1" || p.AllocatedQty != 500 {
		t.Errorf("pairing = %s->%s qty %.0f, want WO1->SO1 qty 500", p.WoNumber, p.SoNumber, p.AllocatedQty)
	}
	if p.WoRemainingAfter != 0 {
		t.Errorf("remaining after = %.0f, want 0", p.WoRemainingAfter)
	}
	if len(pairingsBySource(a, SourceExcess)) != 0 || len(pairingsBySource(a, SourceShortage)) != 0 {
		t.Error("exact match should produce no excess or shortage lines")
	}
}

// Inventory alone covers an urgent order with spare stock left over.
func TestAnalyzeStockCoversUrgentOrder(t *testing.T) {
	a := Analyze(Input{
		PartNumber:  "P2",
		SalesOrders: []SalesOrder{so("SO1", 150, "2024-01-11")}, // due in 10 days, urgent
		Inventory:   stock(200),
	}, testNow)

	if a.Status != StatusExcess {
		t.Errorf("status = %v, want EXCESS (supply 200 vs demand 150)", a.Status)
	}
	if a.Category != CategoryUrgentCovered || a.TrafficLight != LightYellow {
		t.Errorf("decision = %v/%v, want URGENT_COVERED/YELLOW", a.Category, a.TrafficLight)
	}

	stockLines := pairingsBySource(a, SourceStock)
	if len(stockLines) != 1 || stockLines[0].AllocatedQty != 150 {
		t.Fatalf("stock pairing = %+v, want one line of 150", stockLines)
	}
	if len(pairingsBySource(a, SourceShortage)) != 0 {
		t.Error("fully covered demand must not produce shortage lines")
	}
}

// Urgent demand exceeds capacity: partial allocation plus a tagged shortage.
func TestAnalyzeUrgentShortage(t *testing.T) {
	a := Analyze(Input{
		PartNumber:  "P3",
		WorkOrders:  []WorkOrder{wo("WO1", 100, "2024-01-06")},
		SalesOrders: []SalesOrder{so("SO1", 150, "2024-01-04")},
	}, testNow)

	if a.Status != StatusShortage {
		t.Errorf("status = %v, want SHORTAGE", a.Status)
	}
	if a.Category != CategoryUrgentShortage || a.TrafficLight != LightRed {
		t.Errorf("decision = %v/%v, want URGENT_SHORTAGE/RED", a.Category, a.TrafficLight)
	}

	matches := pairingsBySource(a, SourceWorkOrder)
	if len(matches) != 1 || matches[0].AllocatedQty != 100 {
		t.Fatalf("work order pairing = %+v, want one line of 100", matches)
	}

	shortages := pairingsBySource(a, SourceShortage)
	if len(shortages) != 1 {
		t.Fatalf("got %d shortage lines, want 1", len(shortages))
	}
	s := shortages[0]
	if s.AllocatedQty != 50 || s.Label != "URGENT SHORTAGE" {
		t.Errorf("shortage = qty %.0f label %q, want 50 / URGENT SHORTAGE", s.AllocatedQty, s.Label)
	}
}

// Supply with zero demand: rule 1 fires before the EXCESS status mapping.
func TestAnalyzeNoDemand(t *testing.T) {
	a := Analyze(Input{
		PartNumber: "P4",
		WorkOrders: []WorkOrder{wo("WO1", 300, "2024-02-01")},
	}, testNow)

	if a.Status != StatusExcess {
		t.Errorf("status = %v, want EXCESS", a.Status)
	}
	if a.Category != CategoryNoDemand || a.TrafficLight != LightGray {
		t.Errorf("decision = %v/%v, want NO_DEMAND/GRAY", a.Category, a.TrafficLight)
	}

	excess := pairingsBySource(a, SourceExcess)
	if len(excess) != 1 || excess[0].WoRemainingAfter != 300 {
		t.Fatalf("excess lines = %+v, want one line with 300 remaining", excess)
	}
}

// Two work orders feeding one sales order: FIFO split with tracked remainder.
func TestAnalyzeMultiWorkOrderFulfillment(t *testing.T) {
	a := Analyze(Input{
		PartNumber: "P5",
		WorkOrders: []WorkOrder{
			wo("WO1", 60, "2024-01-02"),
			wo("WO2", 60, "2024-01-06"),
		},
		SalesOrders: []SalesOrder{so("SO1", 100, "2024-02-15")},
	}, testNow)

	matches := pairingsBySource(a, SourceWorkOrder)
	if len(matches) != 2 {
		t.Fatalf("got %d work order pairings, want 2", len(matches))
	}
	if matches[0].WoNumber != "WO1" || matches[0].AllocatedQty != 60 || matches[0].WoRemainingAfter != 0 {
		t.Errorf("first pairing = %+v, want WO1 qty 60 remaining 0", matches[0])
	}
	if matches[1].WoNumber != "WO2" || matches[1].AllocatedQty != 40 || matches[1].WoRemainingAfter != 20 {
		t.Errorf("second pairing = %+v, want WO2 qty 40 remaining 20", matches[1])
	}

	excess := pairingsBySource(a, SourceExcess)
	if len(excess) != 1 || excess[0].WoNumber != "WO2" || excess[0].WoRemainingAfter != 20 {
		t.Fatalf("excess lines = %+v, want WO2 with 20 left", excess)
	}
	// The excess line reports the order's original availability; only
	// WoRemainingAfter carries the leftover, same as the matched pairings.
	if excess[0].WoAvailable != 60 {
		t.Errorf("excess WoAvailable = %.0f, want 60", excess[0].WoAvailable)
	}

	if a.Status != StatusExcess {
		t.Errorf("status = %v, want EXCESS (120 supply vs 100 demand)", a.Status)
	}
	if a.Category != CategoryStockSufficient || a.TrafficLight != LightGreen {
		t.Errorf("decision = %v/%v, want STOCK_SUFFICIENT/GREEN", a.Category, a.TrafficLight)
	}
}

// No supply at all: every sales order becomes a full shortage line.
func TestAnalyzeNoSupply(t *testing.T) {
	a := Analyze(Input{
		PartNumber: "P6",
		SalesOrders: []SalesOrder{
			so("SO1", 40, "2024-01-05"),
			so("SO2", 60, "2024-09-01"),
		},
	}, testNow)

	shortages := pairingsBySource(a, SourceShortage)
	if len(shortages) != 2 {
		t.Fatalf("got %d shortage lines, want 2", len(shortages))
	}
	if shortages[0].Label != "URGENT SHORTAGE" || shortages[0].AllocatedQty != 40 {
		t.Errorf("first shortage = %+v, want URGENT SHORTAGE 40", shortages[0])
	}
	if shortages[1].Label != "FUTURE NEED" || shortages[1].AllocatedQty != 60 {
		t.Errorf("second shortage = %+v, want FUTURE NEED 60", shortages[1])
	}
	if a.UtilizationPercent != nil {
		t.Errorf("utilization = %v, want nil (N/A) when demand > 0 and supply = 0", *a.UtilizationPercent)
	}
}

// Inventory-first: stock must be exhausted before work orders are touched.
func TestAnalyzeInventoryConsumedFirst(t *testing.T) {
	a := Analyze(Input{
		PartNumber:  "P7",
		WorkOrders:  []WorkOrder{wo("WO1", 100, "2024-01-03")},
		SalesOrders: []SalesOrder{so("SO1", 80, "2024-01-10"), so("SO2", 50, "2024-02-15")},
		Inventory:   stock(90),
	}, testNow)

	stockLines := pairingsBySource(a, SourceStock)
	if len(stockLines) != 2 {
		t.Fatalf("got %d stock lines, want 2", len(stockLines))
	}
	if stockLines[0].SoNumber != "SO1" || stockLines[0].AllocatedQty != 80 {
		t.Errorf("first stock line = %+v, want SO1 qty 80", stockLines[0])
	}
	if stockLines[1].SoNumber != "SO2" || stockLines[1].AllocatedQty != 10 {
		t.Errorf("second stock line = %+v, want SO2 qty 10", stockLines[1])
	}

	matches := pairingsBySource(a, SourceWorkOrder)
	if len(matches) != 1 || matches[0].SoNumber != "SO2" || matches[0].AllocatedQty != 40 {
		t.Fatalf("work order pairings = %+v, want WO1->SO2 qty 40 only", matches)
	}
}

// FIFO ordering: the earlier-due work order is drained before the later one.
func TestAnalyzeFIFOOrdering(t *testing.T) {
	a := Analyze(Input{
		PartNumber: "P8",
		WorkOrders: []WorkOrder{
			wo("LATE", 100, "2024-03-01"),
			wo("EARLY", 100, "2024-01-05"),
		},
		SalesOrders: []SalesOrder{so("SO1", 120, "2024-04-01")},
	}, testNow)

	matches := pairingsBySource(a, SourceWorkOrder)
	if len(matches) != 2 {
		t.Fatalf("got %d pairings, want 2", len(matches))
	}
	if matches[0].WoNumber != "EARLY" || matches[0].AllocatedQty != 100 {
		t.Errorf("first allocation from %s qty %.0f, want EARLY 100", matches[0].WoNumber, matches[0].AllocatedQty)
	}
	if matches[1].WoNumber != "LATE" || matches[1].AllocatedQty != 20 {
		t.Errorf("second allocation from %s qty %.0f, want LATE 20", matches[1].WoNumber, matches[1].AllocatedQty)
	}
}

// Conservation: no work order or sales order is over-allocated.
func TestAnalyzeConservation(t *testing.T) {
	in := Input{
		PartNumber: "P9",
		WorkOrders: []WorkOrder{
			wo("WO1", 35, "2024-01-04"),
			wo("WO2", 80, "2024-01-20"),
			wo("WO3", 15, "2024-02-10"),
		},
		SalesOrders: []SalesOrder{
			so("SO1", 50, "2024-01-08"),
			so("SO2", 25, "2024-01-15"),
			so("SO3", 90, "2024-07-01"),
		},
		Inventory: stock(30),
	}
	a := Analyze(in, testNow)

	woTotals := map[string]float64{}
	soTotals := map[string]float64{}
	stockTotal := 0.0
	for _, p := range a.Pairings {
		switch p.Source {
		case SourceWorkOrder:
			woTotals[p.WoNumber] += p.AllocatedQty
			soTotals[p.SoNumber] += p.AllocatedQty
		case SourceStock:
			stockTotal += p.AllocatedQty
			soTotals[p.SoNumber] += p.AllocatedQty
		}
	}

	for _, w := range in.WorkOrders {
		if woTotals[w.Number] > w.AvailableQty {
			t.Errorf("WO %s over-allocated: %.0f > %.0f", w.Number, woTotals[w.Number], w.AvailableQty)
		}
	}
	for _, s := range in.SalesOrders {
		if soTotals[s.Number] > s.OpenBalance {
			t.Errorf("SO %s over-allocated: %.0f > %.0f", s.Number, soTotals[s.Number], s.OpenBalance)
		}
	}
	if stockTotal > 30 {
		t.Errorf("stock over-allocated: %.0f > 30", stockTotal)
	}

	// Supply and demand here balance within the tolerance band.
	if got := a.TotalSupply - a.TotalSoQuantity; math.Abs(got) > GapTolerance {
		t.Fatalf("test fixture drifted: gap %.0f outside tolerance", got)
	}
	if a.Status != StatusMatched {
		t.Errorf("status = %v, want MATCHED within tolerance", a.Status)
	}
}

// Idempotence: identical inputs give identical outputs, and the input
// slices are never mutated.
func TestAnalyzeIdempotent(t *testing.T) {
	in := Input{
		PartNumber: "P10",
		WorkOrders: []WorkOrder{
			wo("WO1", 50, "2024-01-10"),
			wo("WO2", 50, "2024-01-10"), // same due date: input order must hold
		},
		SalesOrders: []SalesOrder{so("SO1", 70, "2024-01-15")},
		Inventory:   stock(10),
	}

	before := make([]WorkOrder, len(in.WorkOrders))
	copy(before, in.WorkOrders)

	first := Analyze(in, testNow)
	second := Analyze(in, testNow)

	if !reflect.DeepEqual(first, second) {
		t.Error("two runs over the same input differ")
	}
	if !reflect.DeepEqual(before, in.WorkOrders) {
		t.Error("input work orders were mutated")
	}

	matches := pairingsBySource(first, SourceWorkOrder)
	if len(matches) == 0 || matches[0].WoNumber != "WO1" {
		t.Errorf("equal due dates must keep input order, first allocation from %v", matches)
	}
}

// Bad quantities are clamped to zero and reported, never propagated.
func TestAnalyzeNormalizesBadInput(t *testing.T) {
	a := Analyze(Input{
		PartNumber: "P11",
		WorkOrders: []WorkOrder{
			{Number: "WO1", OrderedQty: 100, CompletedQty: 40, DueDate: date("2024-01-10")}, // derive 60
			{Number: "WO2", OrderedQty: -20, DueDate: date("2024-01-12")},
		},
		SalesOrders: []SalesOrder{
			{Number: "SO1", OpenBalance: math.NaN(), DueDate: date("2024-01-20")},
			{Number: "SO2", OpenBalance: 60, DueDate: date("2024-01-25")},
		},
	}, testNow)

	if a.TotalWoQuantity != 60 {
		t.Errorf("total WO qty = %.0f, want 60 (derived, negative clamped)", a.TotalWoQuantity)
	}
	if a.TotalSoQuantity != 60 {
		t.Errorf("total SO qty = %.0f, want 60 (NaN clamped)", a.TotalSoQuantity)
	}
	if len(a.Warnings) == 0 {
		t.Error("expected data-quality warnings for clamped values")
	}
	for _, p := range a.Pairings {
		if math.IsNaN(p.AllocatedQty) || p.AllocatedQty < 0 {
			t.Errorf("invalid allocated qty leaked into pairing: %+v", p)
		}
	}
}

func TestAnalyzeUtilization(t *testing.T) {
	a := Analyze(Input{PartNumber: "EMPTY"}, testNow)
	if a.UtilizationPercent == nil || *a.UtilizationPercent != 0 {
		t.Errorf("0 demand / 0 supply utilization = %v, want 0", a.UtilizationPercent)
	}
	if a.Category != CategoryNoDemand {
		t.Errorf("category = %v, want NO_DEMAND", a.Category)
	}

	b := Analyze(Input{
		PartNumber:  "HALF",
		WorkOrders:  []WorkOrder{wo("WO1", 200, "2024-01-10")},
		SalesOrders: []SalesOrder{so("SO1", 100, "2024-05-01")},
	}, testNow)
	if b.UtilizationPercent == nil || *b.UtilizationPercent != 50 {
		t.Errorf("utilization = %v, want 50", b.UtilizationPercent)
	}
}

func TestAnalyzeMultiWORecommendationMentionsSequence(t *testing.T) {
	a := Analyze(Input{
		PartNumber: "P12",
		WorkOrders: []WorkOrder{
			wo("WO1", 60, "2024-01-02"),
			wo("WO2", 60, "2024-01-06"),
		},
		SalesOrders: []SalesOrder{so("SO1", 100, "2024-03-01")},
	}, testNow)

	matches := pairingsBySource(a, SourceWorkOrder)
	if len(matches) != 2 {
		t.Fatalf("got %d pairings, want 2", len(matches))
	}
	if want := "part 1 of 2"; !strings.Contains(matches[0].Recommendation, want) {
		t.Errorf("first recommendation %q lacks %q", matches[0].Recommendation, want)
	}
	if want := "part 2 of 2"; !strings.Contains(matches[1].Recommendation, want) {
		t.Errorf("second recommendation %q lacks %q", matches[1].Recommendation, want)
	}
	// Cumulative coverage on the last leg is 100/100.
	if want := "(100%)"; !strings.Contains(matches[1].Recommendation, want) {
		t.Errorf("second recommendation %q lacks cumulative percentage", matches[1].Recommendation)
	}
}
