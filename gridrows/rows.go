package gridrows

import (
	"fmt"
	"sort"
	"time"

	"eyefi-app/allocation"
)

// AllocationType marks a detail row as engine output or a planner override.
type AllocationType string

const (
	TypeAutomatic AllocationType = "AUTOMATIC"
	TypeManual    AllocationType = "MANUAL"
)

// DetailRow is one line under an expanded part row in the dashboard grid.
type DetailRow struct {
	ID             string                `json:"id"`
	WoNumber       string                `json:"woNumber"`
	WoQuantity     float64               `json:"woQuantity"`
	WoAvailable    float64               `json:"woAvailable"`
	WoRemainingQty float64               `json:"woRemainingQty"`
	WoDueDate      *time.Time            `json:"woDueDate,omitempty"`
	WoStatus       string                `json:"woStatus"`
	SoNumber       string                `json:"soNumber"`
	SoQuantity     float64               `json:"soQuantity"`
	SoDueDate      *time.Time            `json:"soDueDate,omitempty"`
	AllocatedQty   float64               `json:"allocatedQuantity"`
	AllocationType AllocationType        `json:"allocationType"`
	Priority       int                   `json:"priority"`
	IsLocked       bool                  `json:"isLocked"`
	TimingRisk     allocation.TimingRisk `json:"timingRisk"`
	Recommendation string                `json:"recommendation"`
}

// MasterRow is one part in the dashboard grid, with its detail rows nested
// for the expandable view.
type MasterRow struct {
	ID                 string                  `json:"id"`
	PartNumber         string                  `json:"partNumber"`
	TotalWoQuantity    float64                 `json:"totalWoQuantity"`
	TotalSoQuantity    float64                 `json:"totalSoQuantity"`
	TotalStock         float64                 `json:"totalAvailableStock"`
	AllocationGap      float64                 `json:"allocationGap"`
	AllocationStatus   allocation.Status       `json:"allocationStatus"`
	DecisionCategory   allocation.Category     `json:"decisionCategory"`
	DecisionSummary    string                  `json:"decisionSummary"`
	TrafficLightStatus allocation.TrafficLight `json:"trafficLightStatus"`
	UtilizationPercent *float64                `json:"utilizationPercent"`
	Allocations        []DetailRow             `json:"allocations"`
}

// Override marks one WO/SO pairing as planner-controlled. A manual row
// replaces the automatic quantity and priority where set. Keyed by
// OverrideKey in the map passed to Build.
type Override struct {
	Manual   bool
	Locked   bool
	Qty      float64
	Priority int
}

// OverrideKey identifies a pairing for override lookup.
func OverrideKey(woNumber, soNumber string) string {
	return woNumber + "|" + soNumber
}

// Build turns engine results into grid rows, one master row per part.
// soPriority overrides the urgency-derived priority for every row of a
// sales order. Both maps may be nil.
func Build(analyses []allocation.Analysis, overrides map[string]Override, soPriority map[string]int) []MasterRow {
	rows := make([]MasterRow, 0, len(analyses))
	for _, a := range analyses {
		rows = append(rows, buildMaster(a, overrides, soPriority))
	}
	return rows
}

func buildMaster(a allocation.Analysis, overrides map[string]Override, soPriority map[string]int) MasterRow {
	details := make([]DetailRow, 0, len(a.Pairings))
	for _, p := range a.Pairings {
		details = append(details, buildDetail(p, overrides, soPriority))
	}

	// Manual rows lead, then priority order. Stable, so the engine's
	// due-date order survives within each band.
	sort.SliceStable(details, func(i, j int) bool {
		mi, mj := details[i].AllocationType == TypeManual, details[j].AllocationType == TypeManual
		if mi != mj {
			return mi
		}
		return details[i].Priority < details[j].Priority
	})

	return MasterRow{
		ID:                 "part-" + a.PartNumber,
		PartNumber:         a.PartNumber,
		TotalWoQuantity:    a.TotalWoQuantity,
		TotalSoQuantity:    a.TotalSoQuantity,
		TotalStock:         a.TotalAvailableStock,
		AllocationGap:      a.Gap,
		AllocationStatus:   a.Status,
		DecisionCategory:   a.Category,
		DecisionSummary:    a.DecisionSummary,
		TrafficLightStatus: a.TrafficLight,
		UtilizationPercent: a.UtilizationPercent,
		Allocations:        details,
	}
}

func buildDetail(p allocation.Pairing, overrides map[string]Override, soPriority map[string]int) DetailRow {
	row := DetailRow{
		WoStatus:       p.WoStatus,
		WoQuantity:     p.WoAvailable,
		WoAvailable:    p.WoAvailable,
		WoRemainingQty: p.WoRemainingAfter,
		WoDueDate:      p.WoDueDate,
		SoNumber:       p.SoNumber,
		SoQuantity:     p.SoQuantity,
		SoDueDate:      p.SoDueDate,
		AllocatedQty:   p.AllocatedQty,
		AllocationType: TypeAutomatic,
		Priority:       p.Priority,
		TimingRisk:     p.TimingRisk,
		Recommendation: p.Recommendation,
	}

	switch p.Source {
	case allocation.SourceWorkOrder:
		row.ID = fmt.Sprintf("%s-%s", p.WoNumber, p.SoNumber)
		row.WoNumber = p.WoNumber
	case allocation.SourceStock:
		row.ID = fmt.Sprintf("STOCK-%s", p.SoNumber)
		row.WoNumber = "STOCK"
	case allocation.SourceExcess:
		row.ID = fmt.Sprintf("%s-EXCESS", p.WoNumber)
		row.WoNumber = p.WoNumber
	case allocation.SourceShortage:
		// Shortage rows show the shortage tag in the WO column.
		row.ID = fmt.Sprintf("SHORTAGE-%s", p.SoNumber)
		row.WoNumber = p.Label
	}

	if prio, ok := soPriority[p.SoNumber]; ok && p.SoNumber != "" {
		row.Priority = prio
	}

	if ov, ok := overrides[OverrideKey(p.WoNumber, p.SoNumber)]; ok {
		row.IsLocked = ov.Locked
		if ov.Manual {
			row.AllocationType = TypeManual
			if ov.Qty > 0 {
				row.AllocatedQty = ov.Qty
			}
			if ov.Priority > 0 {
				row.Priority = ov.Priority
			}
		}
	}

	return row
}

// SummaryStats are the headline counters above the grid.
type SummaryStats struct {
	TotalParts    int `json:"totalParts"`
	MatchedParts  int `json:"matchedParts"`
	ShortageParts int `json:"shortageParts"`
	ExcessParts   int `json:"excessParts"`
	RedParts      int `json:"redParts"`
	YellowParts   int `json:"yellowParts"`
	GreenParts    int `json:"greenParts"`
	GrayParts     int `json:"grayParts"`
}

// Summarize counts rows by status and traffic light.
func Summarize(rows []MasterRow) SummaryStats {
	var s SummaryStats
	s.TotalParts = len(rows)
	for _, r := range rows {
		switch r.AllocationStatus {
		case allocation.StatusMatched:
			s.MatchedParts++
		case allocation.StatusShortage:
			s.ShortageParts++
		case allocation.StatusExcess:
			s.ExcessParts++
		}
		switch r.TrafficLightStatus {
		case allocation.LightRed:
			s.RedParts++
		case allocation.LightYellow:
			s.YellowParts++
		case allocation.LightGreen:
			s.GreenParts++
		default:
			s.GrayParts++
		}
	}
	return s
}
