package allocation

import "time"

// Status compares total supply (work orders + stock) against total demand.
type Status string

const (
	StatusShortage Status = "SHORTAGE"
	StatusMatched  Status = "MATCHED"
	StatusExcess   Status = "EXCESS"
)

// Category is the triage decision for a part on the dashboard.
type Category string

const (
	CategoryStockSufficient Category = "STOCK_SUFFICIENT"
	CategoryUrgentCovered   Category = "URGENT_COVERED"
	CategoryUrgentShortage  Category = "URGENT_SHORTAGE"
	CategoryFutureOnly      Category = "FUTURE_ONLY"
	CategoryNoDemand        Category = "NO_DEMAND"
	CategoryManualReview    Category = "MANUAL_REVIEW"
)

type TrafficLight string

const (
	LightGreen  TrafficLight = "GREEN"
	LightYellow TrafficLight = "YELLOW"
	LightRed    TrafficLight = "RED"
	LightGray   TrafficLight = "GRAY"
)

// Urgency buckets a sales order by how soon it is due.
type Urgency string

const (
	UrgencyUrgent Urgency = "URGENT"
	UrgencyNormal Urgency = "NORMAL"
	UrgencyFuture Urgency = "FUTURE"
)

type TimingRisk string

const (
	RiskLow    TimingRisk = "LOW"
	RiskMedium TimingRisk = "MEDIUM"
	RiskHigh   TimingRisk = "HIGH"
)

// Source tells what kind of line a Pairing is.
type Source string

const (
	SourceWorkOrder Source = "WORK_ORDER"
	SourceStock     Source = "STOCK"
	SourceExcess    Source = "EXCESS"
	SourceShortage  Source = "SHORTAGE"
)

// GapTolerance is the band around zero inside which supply and demand are
// reported as MATCHED. Product decision, see capacity reports in QAD.
const GapTolerance = 5.0

// WorkOrder is one unit of manufacturing supply as fetched from the ERP.
type WorkOrder struct {
	Number       string    `json:"wo_nbr"`
	OrderedQty   float64   `json:"wo_qty_ord"`
	CompletedQty float64   `json:"wo_qty_comp"`
	AvailableQty float64   `json:"available_qty"`
	DueDate      time.Time `json:"wo_due_date"`
	Status       string    `json:"wo_status"`
}

// SalesOrder is one line of customer demand as fetched from the ERP.
type SalesOrder struct {
	Number      string    `json:"sod_nbr"`
	OrderedQty  float64   `json:"total_ordered"`
	PickedQty   float64   `json:"total_picked"`
	ShippedQty  float64   `json:"total_shipped"`
	OpenBalance float64   `json:"open_balance"`
	DueDate     time.Time `json:"sod_due_date"`
	Status      string    `json:"sod_status"`
}

// InventoryRecord is on-hand stock at one location.
type InventoryRecord struct {
	Location       string  `json:"location"`
	Part           string  `json:"part"`
	QtyOnHand      float64 `json:"qty_oh"`
	QtyAllocated   float64 `json:"qty_all"`
	AvailableStock float64 `json:"available_stock"`
}

// Pairing is one allocation line: stock or a work order matched to a sales
// order, leftover capacity (no sales order), or unmet demand (no supply).
type Pairing struct {
	Source           Source     `json:"source"`
	WoNumber         string     `json:"wo_number,omitempty"`
	WoStatus         string     `json:"wo_status,omitempty"`
	SoNumber         string     `json:"so_number,omitempty"`
	Label            string     `json:"label,omitempty"`
	AllocatedQty     float64    `json:"allocated_qty"`
	WoAvailable      float64    `json:"wo_available,omitempty"`
	WoRemainingAfter float64    `json:"wo_remaining_after"`
	WoDueDate        *time.Time `json:"wo_due_date,omitempty"`
	SoDueDate        *time.Time `json:"so_due_date,omitempty"`
	SoQuantity       float64    `json:"so_quantity,omitempty"`
	Urgency          Urgency    `json:"urgency,omitempty"`
	Priority         int        `json:"priority"`
	TimingRisk       TimingRisk `json:"timing_risk"`
	Recommendation   string     `json:"recommendation"`
}

// Input is everything the engine needs for one part. The slices are not
// mutated; working copies are built per run.
type Input struct {
	PartNumber  string
	WorkOrders  []WorkOrder
	SalesOrders []SalesOrder
	Inventory   []InventoryRecord
}

// Analysis is the per-part result: aggregate totals, the status/decision
// triage, and the full pairing list.
type Analysis struct {
	PartNumber          string       `json:"partNumber"`
	TotalWoQuantity     float64      `json:"totalWoQuantity"`
	TotalSoQuantity     float64      `json:"totalSoQuantity"`
	TotalAvailableStock float64      `json:"totalAvailableStock"`
	TotalSupply         float64      `json:"totalSupply"`
	Gap                 float64      `json:"allocationGap"`
	Shortfall           float64      `json:"shortfall"`
	StockCoverage       float64      `json:"stockCoverage"`
	WoNeeded            float64      `json:"woNeeded"`
	UrgentDemand        float64      `json:"urgentDemand"`
	NormalDemand        float64      `json:"normalDemand"`
	FutureDemand        float64      `json:"futureDemand"`
	UtilizationPercent  *float64     `json:"utilizationPercent"`
	Status              Status       `json:"allocationStatus"`
	Category            Category     `json:"decisionCategory"`
	TrafficLight        TrafficLight `json:"trafficLightStatus"`
	DecisionSummary     string       `json:"decisionSummary"`
	CriticalDueDate     *time.Time   `json:"criticalDueDate,omitempty"`
	Pairings            []Pairing    `json:"pairings"`
	Warnings            []string     `json:"warnings,omitempty"`
}
