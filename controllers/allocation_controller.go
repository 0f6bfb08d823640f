package controllers

import (
	"fmt"
	"net/http"
	"time"

	"eyefi-app/gridrows"
	"eyefi-app/repositories"
	"eyefi-app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// AllocationController serves the dashboard's dominant surface: the
// allocation analysis and its derived views. Reads come from the ERP
// mirror, planner overrides from the app database.
type AllocationController struct {
	ErpDB *gorm.DB
	AppDB *gorm.DB
}

func NewAllocationController(erpDB, appDB *gorm.DB) *AllocationController {
	return &AllocationController{ErpDB: erpDB, AppDB: appDB}
}

func (c *AllocationController) service() *services.AllocationService {
	return services.NewAllocationService(
		repositories.NewOrderRepository(c.ErpDB),
		repositories.NewManualAllocationRepository(c.AppDB),
	)
}

func (c *AllocationController) GetPartsWithOrders(ctx *fiber.Ctx) error {
	orderRepo := repositories.NewOrderRepository(c.ErpDB)
	parts, err := orderRepo.GetPartsWithOrders()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": parts})
}

type partNumbersRequest struct {
	PartNumbers []string `json:"partNumbers"`
}

func (c *AllocationController) GetAnalysis(ctx *fiber.Ctx) error {
	var payload partNumbersRequest
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if len(payload.PartNumbers) == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Part numbers required"})
	}

	data, err := c.service().AnalyzePartsWithSources(payload.PartNumbers, time.Now())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": data})
}

func (c *AllocationController) GetInventoryAvailability(ctx *fiber.Ctx) error {
	var payload partNumbersRequest
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if len(payload.PartNumbers) == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Part numbers required"})
	}

	orderRepo := repositories.NewOrderRepository(c.ErpDB)
	details, err := orderRepo.GetInventoryDetails(payload.PartNumbers)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": details})
}

func (c *AllocationController) GetUnmatchedSalesOrders(ctx *fiber.Ctx) error {
	orderRepo := repositories.NewOrderRepository(c.ErpDB)
	orders, err := orderRepo.GetUnmatchedSalesOrders()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": orders})
}

func (c *AllocationController) GetCapacityVsDemand(ctx *fiber.Ctx) error {
	orderRepo := repositories.NewOrderRepository(c.ErpDB)
	report, err := orderRepo.GetCapacityVsDemand()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": report})
}

// GetTable returns the master-detail grid plus the headline counters,
// for all parts or a single part via ?part=.
func (c *AllocationController) GetTable(ctx *fiber.Ctx) error {
	var rows []gridrows.MasterRow
	var err error

	if part := ctx.Query("part"); part != "" {
		rows, err = c.service().BuildTable([]string{part}, time.Now())
	} else {
		rows, err = c.service().BuildFullTable(time.Now())
	}
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"rows":    rows,
			"summary": gridrows.Summarize(rows),
		},
	})
}

// ExportExcel generates the allocation report as a spreadsheet.
func (c *AllocationController) ExportExcel(ctx *fiber.Ctx) error {
	rows, err := c.service().BuildFullTable(time.Now())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	f.SetCellValue(sheet, "A1", "Part Number")
	f.SetCellValue(sheet, "B1", "WO Number")
	f.SetCellValue(sheet, "C1", "SO Number")
	f.SetCellValue(sheet, "D1", "Allocated Qty")
	f.SetCellValue(sheet, "E1", "WO Remaining")
	f.SetCellValue(sheet, "F1", "Status")
	f.SetCellValue(sheet, "G1", "Decision")
	f.SetCellValue(sheet, "H1", "Traffic Light")
	f.SetCellValue(sheet, "I1", "Timing Risk")
	f.SetCellValue(sheet, "J1", "Recommendation")

	line := 2
	for _, master := range rows {
		for _, detail := range master.Allocations {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", line), master.PartNumber)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", line), detail.WoNumber)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", line), detail.SoNumber)
			f.SetCellValue(sheet, fmt.Sprintf("D%d", line), detail.AllocatedQty)
			f.SetCellValue(sheet, fmt.Sprintf("E%d", line), detail.WoRemainingQty)
			f.SetCellValue(sheet, fmt.Sprintf("F%d", line), string(master.AllocationStatus))
			f.SetCellValue(sheet, fmt.Sprintf("G%d", line), string(master.DecisionCategory))
			f.SetCellValue(sheet, fmt.Sprintf("H%d", line), string(master.TrafficLightStatus))
			f.SetCellValue(sheet, fmt.Sprintf("I%d", line), string(detail.TimingRisk))
			f.SetCellValue(sheet, fmt.Sprintf("J%d", line), detail.Recommendation)
			line++
		}
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="allocation-report.xlsx"`)

	if err := f.Write(ctx.Response().BodyWriter()); err != nil {
		return ctx.Status(http.StatusInternalServerError).SendString("Failed to generate Excel")
	}

	return nil
}
