package repositories

import (
	"strings"
	"time"

	"eyefi-app/allocation"
	"eyefi-app/config"

	"gorm.io/gorm"
)

// OrderRepository reads work orders, sales orders and stock from the QAD
// mirror. Open work orders are status R, O, P or F with quantity left to
// build; open sales orders have unshipped balance on an open SO header.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db}
}

func (r *OrderRepository) GetPartsWithOrders() ([]string, error) {

	sqlParts := `SELECT DISTINCT wo_part
	FROM (
		SELECT wo_part
		FROM wo_mstr
		WHERE wo_status IN ('R', 'O', 'P', 'F')
		  AND (wo_qty_ord - wo_qty_comp) > 0
		  AND wo_domain = ?
		UNION
		SELECT sod_part
		FROM sod_det
		JOIN so_mstr ON sod_nbr = so_nbr AND so_domain = ?
		WHERE (sod_qty_ord - sod_qty_ship) > 0
		  AND sod_domain = ?
	) AS parts_with_orders
	ORDER BY wo_part`

	var parts []string
	domain := config.ErpDomain
	if err := r.db.Raw(sqlParts, domain, domain, domain).Scan(&parts).Error; err != nil {
		return nil, err
	}

	// Mirror columns are CHAR padded
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return parts, nil
}

type workOrderRow struct {
	WoNbr        string    `json:"wo_nbr"`
	WoPart       string    `json:"wo_part"`
	WoDueDate    time.Time `json:"wo_due_date"`
	WoQtyOrd     float64   `json:"wo_qty_ord"`
	WoQtyComp    float64   `json:"wo_qty_comp"`
	WoStatus     string    `json:"wo_status"`
	AvailableQty float64   `json:"available_qty"`
}

// GetWorkOrders returns open work orders grouped by part, ordered by due
// date then order number so allocation runs are deterministic.
func (r *OrderRepository) GetWorkOrders(partNumbers []string) (map[string][]allocation.WorkOrder, error) {

	sqlWo := `SELECT
		wo_nbr,
		wo_part,
		wo_due_date,
		wo_qty_ord,
		wo_qty_comp,
		wo_status,
		(wo_qty_ord - wo_qty_comp) AS available_qty
	FROM wo_mstr
	WHERE wo_part IN ?
	  AND wo_status IN ('R', 'O', 'P', 'F')
	  AND (wo_qty_ord - wo_qty_comp) > 0
	  AND wo_domain = ?
	ORDER BY wo_part, wo_due_date, wo_nbr`

	var rows []workOrderRow
	if err := r.db.Raw(sqlWo, partNumbers, config.ErpDomain).Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make(map[string][]allocation.WorkOrder)
	for _, row := range rows {
		part := strings.TrimSpace(row.WoPart)
		result[part] = append(result[part], allocation.WorkOrder{
			Number:       strings.TrimSpace(row.WoNbr),
			OrderedQty:   row.WoQtyOrd,
			CompletedQty: row.WoQtyComp,
			AvailableQty: row.AvailableQty,
			DueDate:      row.WoDueDate,
			Status:       strings.TrimSpace(row.WoStatus),
		})
	}

	return result, nil
}

type salesOrderRow struct {
	SodNbr       string    `json:"sod_nbr"`
	SodPart      string    `json:"sod_part"`
	SodDueDate   time.Time `json:"sod_due_date"`
	TotalOrdered float64   `json:"total_ordered"`
	TotalShipped float64   `json:"total_shipped"`
	TotalPicked  float64   `json:"total_picked"`
	OpenBalance  float64   `json:"open_balance"`
}

func (r *OrderRepository) GetSalesOrders(partNumbers []string) (map[string][]allocation.SalesOrder, error) {

	sqlSo := `SELECT
		sod_nbr,
		sod_part,
		sod_due_date,
		sod_qty_ord AS total_ordered,
		sod_qty_ship AS total_shipped,
		sod_qty_pick AS total_picked,
		(sod_qty_ord - sod_qty_ship) AS open_balance
	FROM sod_det
	JOIN so_mstr ON sod_nbr = so_nbr AND so_domain = ?
	WHERE sod_part IN ?
	  AND (sod_qty_ord - sod_qty_ship) > 0
	  AND sod_domain = ?
	ORDER BY sod_part, sod_due_date, sod_nbr`

	var rows []salesOrderRow
	if err := r.db.Raw(sqlSo, config.ErpDomain, partNumbers, config.ErpDomain).Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make(map[string][]allocation.SalesOrder)
	for _, row := range rows {
		part := strings.TrimSpace(row.SodPart)
		result[part] = append(result[part], allocation.SalesOrder{
			Number:      strings.TrimSpace(row.SodNbr),
			OrderedQty:  row.TotalOrdered,
			PickedQty:   row.TotalPicked,
			ShippedQty:  row.TotalShipped,
			OpenBalance: row.OpenBalance,
			DueDate:     row.SodDueDate,
		})
	}

	return result, nil
}

type inventoryRow struct {
	LdLoc          string  `json:"ld_loc"`
	LdPart         string  `json:"ld_part"`
	LdSite         string  `json:"ld_site"`
	LdLot          string  `json:"ld_lot"`
	LdStatus       string  `json:"ld_status"`
	LdQtyOh        float64 `json:"ld_qty_oh"`
	LdQtyAll       float64 `json:"ld_qty_all"`
	AvailableStock float64 `json:"available_stock"`
	FullDesc       string  `json:"full_desc"`
}

// InventoryDetail is the availability view returned to the frontend, one
// row per stock location.
type InventoryDetail struct {
	Location       string  `json:"location"`
	Part           string  `json:"part"`
	Site           string  `json:"site"`
	Lot            string  `json:"lot"`
	Status         string  `json:"status"`
	QtyOnHand      float64 `json:"qty_oh"`
	QtyAllocated   float64 `json:"qty_all"`
	AvailableStock float64 `json:"available_stock"`
	Description    string  `json:"description"`
}

func (r *OrderRepository) GetInventoryDetails(partNumbers []string) ([]InventoryDetail, error) {

	sqlInv := `SELECT
		a.ld_loc,
		a.ld_part,
		a.ld_site,
		a.ld_lot,
		a.ld_status,
		a.ld_qty_oh,
		a.ld_qty_all,
		(a.ld_qty_oh - a.ld_qty_all) AS available_stock,
		CONCAT(b.pt_desc1, b.pt_desc2) AS full_desc
	FROM ld_det a
	LEFT JOIN (
		SELECT pt_part,
			MAX(pt_desc1) AS pt_desc1,
			MAX(pt_desc2) AS pt_desc2
		FROM pt_mstr
		WHERE pt_domain = ?
		GROUP BY pt_part
	) b ON b.pt_part = a.ld_part
	WHERE a.ld_part IN ?
	  AND a.ld_domain = ?
	  AND a.ld_qty_oh > 0
	ORDER BY a.ld_part, (a.ld_qty_oh - a.ld_qty_all) DESC`

	var rows []inventoryRow
	if err := r.db.Raw(sqlInv, config.ErpDomain, partNumbers, config.ErpDomain).Scan(&rows).Error; err != nil {
		return nil, err
	}

	details := make([]InventoryDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, InventoryDetail{
			Location:       strings.TrimSpace(row.LdLoc),
			Part:           strings.TrimSpace(row.LdPart),
			Site:           strings.TrimSpace(row.LdSite),
			Lot:            strings.TrimSpace(row.LdLot),
			Status:         strings.TrimSpace(row.LdStatus),
			QtyOnHand:      row.LdQtyOh,
			QtyAllocated:   row.LdQtyAll,
			AvailableStock: row.AvailableStock,
			Description:    strings.TrimSpace(row.FullDesc),
		})
	}

	return details, nil
}

// GetInventory maps the availability view onto engine input records.
func (r *OrderRepository) GetInventory(partNumbers []string) (map[string][]allocation.InventoryRecord, error) {
	details, err := r.GetInventoryDetails(partNumbers)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]allocation.InventoryRecord)
	for _, d := range details {
		result[d.Part] = append(result[d.Part], allocation.InventoryRecord{
			Location:       d.Location,
			Part:           d.Part,
			QtyOnHand:      d.QtyOnHand,
			QtyAllocated:   d.QtyAllocated,
			AvailableStock: d.AvailableStock,
		})
	}

	return result, nil
}

type UnmatchedSalesOrder struct {
	SoNumber      string    `json:"sod_nbr"`
	PartNumber    string    `json:"sod_part"`
	DueDate       time.Time `json:"sod_due_date"`
	TotalOrdered  float64   `json:"total_ordered"`
	TotalShipped  float64   `json:"total_shipped"`
	OpenBalance   float64   `json:"open_balance"`
	WoCapacity    float64   `json:"wo_capacity"`
	SoDemand      float64   `json:"so_demand"`
	AllocationGap float64   `json:"allocation_gap"`
}

// GetUnmatchedSalesOrders lists open sales order lines whose part has no
// work order capacity, or less capacity than total demand.
func (r *OrderRepository) GetUnmatchedSalesOrders() ([]UnmatchedSalesOrder, error) {

	sqlUnmatched := `WITH part_allocation AS (
		SELECT
			wo_part,
			COALESCE(SUM(wo_qty_ord - wo_qty_comp), 0) AS wo_capacity,
			COALESCE((
				SELECT SUM(sod_qty_ord - sod_qty_ship)
				FROM sod_det
				JOIN so_mstr ON sod_nbr = so_nbr
				WHERE sod_det.sod_part = wo_mstr.wo_part
				  AND so_status = 'O'
				  AND (sod_qty_ord - sod_qty_ship) > 0
			), 0) AS so_demand
		FROM wo_mstr
		WHERE wo_status IN ('R', 'O', 'P', 'F')
		  AND (wo_qty_ord - wo_qty_comp) > 0
		  AND wo_domain = ?
		GROUP BY wo_part
	)
	SELECT
		sod.sod_nbr,
		sod.sod_part,
		sod.sod_due_date,
		sod.sod_qty_ord AS total_ordered,
		sod.sod_qty_ship AS total_shipped,
		(sod.sod_qty_ord - sod.sod_qty_ship) AS open_balance,
		COALESCE(pa.wo_capacity, 0) AS wo_capacity,
		COALESCE(pa.so_demand, 0) AS so_demand,
		(COALESCE(pa.wo_capacity, 0) - COALESCE(pa.so_demand, 0)) AS allocation_gap
	FROM sod_det sod
	JOIN so_mstr so ON sod.sod_nbr = so.so_nbr
	LEFT JOIN part_allocation pa ON sod.sod_part = pa.wo_part
	WHERE so.so_status = 'O'
	  AND (sod.sod_qty_ord - sod.sod_qty_ship) > 0
	  AND sod.sod_domain = ?
	  AND (pa.wo_capacity IS NULL OR pa.wo_capacity < pa.so_demand)
	ORDER BY sod.sod_due_date, sod.sod_part`

	var rows []UnmatchedSalesOrder
	if err := r.db.Raw(sqlUnmatched, config.ErpDomain, config.ErpDomain).Scan(&rows).Error; err != nil {
		return nil, err
	}

	for i := range rows {
		rows[i].SoNumber = strings.TrimSpace(rows[i].SoNumber)
		rows[i].PartNumber = strings.TrimSpace(rows[i].PartNumber)
	}

	return rows, nil
}

type CapacityVsDemand struct {
	PartNumber         string  `json:"part_number"`
	TotalCapacity      float64 `json:"total_capacity"`
	TotalDemand        float64 `json:"total_demand"`
	Gap                float64 `json:"gap"`
	UtilizationPercent float64 `json:"utilization_percent"`
	Status             string  `json:"status"`
}

// capacityVsDemandSQL joins the capacity and demand aggregates onto a
// derived union of parts rather than a full outer join, which MySQL does
// not support. Runs unchanged on mysql, postgres and sqlserver.
const capacityVsDemandSQL = `SELECT
	parts.part_number,
	COALESCE(wo_summary.total_capacity, 0) AS total_capacity,
	COALESCE(so_summary.total_demand, 0) AS total_demand,
	(COALESCE(wo_summary.total_capacity, 0) - COALESCE(so_summary.total_demand, 0)) AS gap,
	CASE
		WHEN COALESCE(wo_summary.total_capacity, 0) = 0 THEN 0
		ELSE (COALESCE(so_summary.total_demand, 0) * 100.0 / wo_summary.total_capacity)
	END AS utilization_percent,
	CASE
		WHEN (COALESCE(wo_summary.total_capacity, 0) - COALESCE(so_summary.total_demand, 0)) < -5 THEN 'SHORTAGE'
		WHEN (COALESCE(wo_summary.total_capacity, 0) - COALESCE(so_summary.total_demand, 0)) > 5 THEN 'EXCESS'
		ELSE 'MATCHED'
	END AS status
FROM (
	SELECT wo_part AS part_number
	FROM wo_mstr
	WHERE wo_status IN ('R', 'O', 'P', 'F')
	  AND (wo_qty_ord - wo_qty_comp) > 0
	  AND wo_domain = ?
	UNION
	SELECT sod_part
	FROM sod_det
	JOIN so_mstr ON sod_nbr = so_nbr
	WHERE so_status = 'O'
	  AND (sod_qty_ord - sod_qty_ship) > 0
	  AND sod_domain = ?
) parts
LEFT JOIN (
	SELECT
		wo_part,
		SUM(wo_qty_ord - wo_qty_comp) AS total_capacity
	FROM wo_mstr
	WHERE wo_status IN ('R', 'O', 'P', 'F')
	  AND (wo_qty_ord - wo_qty_comp) > 0
	  AND wo_domain = ?
	GROUP BY wo_part
) wo_summary ON wo_summary.wo_part = parts.part_number
LEFT JOIN (
	SELECT
		sod_part,
		SUM(sod_qty_ord - sod_qty_ship) AS total_demand
	FROM sod_det
	JOIN so_mstr ON sod_nbr = so_nbr
	WHERE so_status = 'O'
	  AND (sod_qty_ord - sod_qty_ship) > 0
	  AND sod_domain = ?
	GROUP BY sod_part
) so_summary ON so_summary.sod_part = parts.part_number
ORDER BY gap ASC, parts.part_number`

// GetCapacityVsDemand is the part-level capacity report. Status uses the
// same tolerance band as the engine, computed in SQL for the full part
// population without running the allocator.
func (r *OrderRepository) GetCapacityVsDemand() ([]CapacityVsDemand, error) {
	domain := config.ErpDomain

	var rows []CapacityVsDemand
	if err := r.db.Raw(capacityVsDemandSQL, domain, domain, domain, domain).Scan(&rows).Error; err != nil {
		return nil, err
	}

	for i := range rows {
		rows[i].PartNumber = strings.TrimSpace(rows[i].PartNumber)
	}

	return rows, nil
}
