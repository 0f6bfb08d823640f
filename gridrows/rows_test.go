package gridrows

import (
	"testing"
	"time"

	"eyefi-app/allocation"
)

func analyzePart(t *testing.T, in allocation.Input) allocation.Analysis {
	t.Helper()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return allocation.Analyze(in, now)
}

func d(s string) time.Time {
	tm, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return tm
}

func TestBuildMasterAndDetailRows(t *testing.T) {
	a := analyzePart(t, allocation.Input{
		PartNumber: "ABC-100",
		WorkOrders: []allocation.WorkOrder{
			{Number: "WO1", OrderedQty: 120, AvailableQty: 120, DueDate: d("2024-01-05")},
		},
		SalesOrders: []allocation.SalesOrder{
			{Number: "SO1", OrderedQty: 100, OpenBalance: 100, DueDate: d("2024-01-15")},
		},
	})

	rows := Build([]allocation.Analysis{a}, nil, nil)
	if len(rows) != 1 {
		t.Fatalf("got %d master rows, want 1", len(rows))
	}

	m := rows[0]
	if m.ID != "part-ABC-100" || m.PartNumber != "ABC-100" {
		t.Errorf("master id/part = %s/%s", m.ID, m.PartNumber)
	}
	if m.AllocationGap != 20 || m.AllocationStatus != allocation.StatusExcess {
		t.Errorf("gap/status = %.0f/%v, want 20/EXCESS", m.AllocationGap, m.AllocationStatus)
	}
	if len(m.Allocations) != 2 {
		t.Fatalf("got %d detail rows, want allocation + excess", len(m.Allocations))
	}

	match := m.Allocations[0]
	if match.ID != "WO1-SO1" || match.WoNumber != "WO1" || match.AllocatedQty != 100 {
		t.Errorf("match row = %+v", match)
	}
	if match.WoRemainingQty != 20 {
		t.Errorf("remaining after = %.0f, want 20", match.WoRemainingQty)
	}
	if match.AllocationType != TypeAutomatic || match.IsLocked {
		t.Errorf("default rows must be AUTOMATIC and unlocked: %+v", match)
	}

	excess := m.Allocations[1]
	if excess.ID != "WO1-EXCESS" || excess.SoNumber != "" {
		t.Errorf("excess row = %+v", excess)
	}
}

func TestBuildShortageRowUsesLabelInWoColumn(t *testing.T) {
	a := analyzePart(t, allocation.Input{
		PartNumber: "ABC-200",
		SalesOrders: []allocation.SalesOrder{
			{Number: "SO9", OrderedQty: 75, OpenBalance: 75, DueDate: d("2024-01-10")},
		},
	})

	rows := Build([]allocation.Analysis{a}, nil, nil)
	details := rows[0].Allocations
	if len(details) != 1 {
		t.Fatalf("got %d detail rows, want 1", len(details))
	}
	sRow := details[0]
	if sRow.ID != "SHORTAGE-SO9" || sRow.WoNumber != "URGENT SHORTAGE" {
		t.Errorf("shortage row = id %q wo %q", sRow.ID, sRow.WoNumber)
	}
	if sRow.Priority != 1 || sRow.TimingRisk != allocation.RiskHigh {
		t.Errorf("urgent shortage priority/risk = %d/%v", sRow.Priority, sRow.TimingRisk)
	}
}

func TestBuildStockRow(t *testing.T) {
	a := analyzePart(t, allocation.Input{
		PartNumber: "ABC-300",
		SalesOrders: []allocation.SalesOrder{
			{Number: "SO1", OrderedQty: 50, OpenBalance: 50, DueDate: d("2024-04-01")},
		},
		Inventory: []allocation.InventoryRecord{
			{Location: "100", QtyOnHand: 50, AvailableStock: 50},
		},
	})

	details := Build([]allocation.Analysis{a}, nil, nil)[0].Allocations
	if len(details) != 1 {
		t.Fatalf("got %d detail rows, want 1", len(details))
	}
	if details[0].ID != "STOCK-SO1" || details[0].WoNumber != "STOCK" {
		t.Errorf("stock row = %+v", details[0])
	}
}

func TestBuildAppliesOverrides(t *testing.T) {
	a := analyzePart(t, allocation.Input{
		PartNumber: "ABC-400",
		WorkOrders: []allocation.WorkOrder{
			{Number: "WO1", OrderedQty: 100, AvailableQty: 100, DueDate: d("2024-01-05")},
		},
		SalesOrders: []allocation.SalesOrder{
			{Number: "SO1", OrderedQty: 100, OpenBalance: 100, DueDate: d("2024-02-01")},
		},
	})

	overrides := map[string]Override{
		OverrideKey("WO1", "SO1"): {Manual: true, Locked: true, Qty: 80, Priority: 2},
	}
	details := Build([]allocation.Analysis{a}, overrides, nil)[0].Allocations
	if details[0].AllocationType != TypeManual || !details[0].IsLocked {
		t.Errorf("override not applied: %+v", details[0])
	}
	if details[0].AllocatedQty != 80 || details[0].Priority != 2 {
		t.Errorf("manual qty/priority not applied: %+v", details[0])
	}
}

func TestBuildManualRowsSortFirst(t *testing.T) {
	a := analyzePart(t, allocation.Input{
		PartNumber: "ABC-500",
		WorkOrders: []allocation.WorkOrder{
			{Number: "WO1", OrderedQty: 40, AvailableQty: 40, DueDate: d("2024-01-05")},
			{Number: "WO2", OrderedQty: 60, AvailableQty: 60, DueDate: d("2024-01-08")},
		},
		SalesOrders: []allocation.SalesOrder{
			{Number: "SO1", OrderedQty: 40, OpenBalance: 40, DueDate: d("2024-01-20")},
			{Number: "SO2", OrderedQty: 60, OpenBalance: 60, DueDate: d("2024-01-25")},
		},
	})

	overrides := map[string]Override{
		OverrideKey("WO2", "SO2"): {Manual: true},
	}
	details := Build([]allocation.Analysis{a}, overrides, nil)[0].Allocations
	if details[0].ID != "WO2-SO2" || details[0].AllocationType != TypeManual {
		t.Errorf("manual row should lead: %+v", details[0])
	}
}

func TestBuildSalesOrderPriorityOverride(t *testing.T) {
	a := analyzePart(t, allocation.Input{
		PartNumber: "ABC-600",
		WorkOrders: []allocation.WorkOrder{
			{Number: "WO1", OrderedQty: 50, AvailableQty: 50, DueDate: d("2024-01-05")},
		},
		SalesOrders: []allocation.SalesOrder{
			{Number: "SO1", OrderedQty: 50, OpenBalance: 50, DueDate: d("2024-06-01")},
		},
	})

	details := Build([]allocation.Analysis{a}, nil, map[string]int{"SO1": 1})[0].Allocations
	if details[0].Priority != 1 {
		t.Errorf("SO priority override not applied: %+v", details[0])
	}
}

func TestSummarize(t *testing.T) {
	rows := []MasterRow{
		{AllocationStatus: allocation.StatusMatched, TrafficLightStatus: allocation.LightGreen},
		{AllocationStatus: allocation.StatusShortage, TrafficLightStatus: allocation.LightRed},
		{AllocationStatus: allocation.StatusExcess, TrafficLightStatus: allocation.LightGray},
	}

	s := Summarize(rows)
	if s.TotalParts != 3 || s.MatchedParts != 1 || s.ShortageParts != 1 || s.ExcessParts != 1 {
		t.Errorf("status counts = %+v", s)
	}
	if s.GreenParts != 1 || s.RedParts != 1 || s.GrayParts != 1 || s.YellowParts != 0 {
		t.Errorf("light counts = %+v", s)
	}
}
