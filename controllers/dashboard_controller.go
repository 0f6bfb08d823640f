package controllers

import (
	"sort"
	"time"

	"eyefi-app/allocation"
	"eyefi-app/gridrows"
	"eyefi-app/repositories"
	"eyefi-app/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DashboardController struct {
	ErpDB *gorm.DB
	AppDB *gorm.DB
}

func NewDashboardController(erpDB, appDB *gorm.DB) *DashboardController {
	return &DashboardController{ErpDB: erpDB, AppDB: appDB}
}

// GetAllocationSummary is the landing-page widget: traffic light counts,
// fleet totals, the red parts worst shortfall first, and the ten parts
// with the nearest critical due date.
func (c *DashboardController) GetAllocationSummary(ctx *fiber.Ctx) error {
	orderRepo := repositories.NewOrderRepository(c.ErpDB)
	service := services.NewAllocationService(
		orderRepo,
		repositories.NewManualAllocationRepository(c.AppDB),
	)

	analyses, err := service.AnalyzeAll(time.Now())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	rows := gridrows.Build(analyses, nil, nil)
	summary := gridrows.Summarize(rows)

	unmatched, err := orderRepo.GetUnmatchedSalesOrders()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	type partLine struct {
		PartNumber   string     `json:"partNumber"`
		Shortfall    float64    `json:"shortfall"`
		UrgentDemand float64    `json:"urgentDemand"`
		CriticalDue  *time.Time `json:"criticalDueDate"`
	}

	var totalGap float64
	var redParts, criticalParts []partLine
	for _, a := range analyses {
		totalGap += a.Gap
		line := partLine{
			PartNumber:   a.PartNumber,
			Shortfall:    a.Shortfall,
			UrgentDemand: a.UrgentDemand,
			CriticalDue:  a.CriticalDueDate,
		}
		if a.TrafficLight == allocation.LightRed {
			redParts = append(redParts, line)
		}
		if a.CriticalDueDate != nil {
			criticalParts = append(criticalParts, line)
		}
	}

	sort.Slice(redParts, func(i, j int) bool {
		return redParts[i].Shortfall > redParts[j].Shortfall
	})
	sort.Slice(criticalParts, func(i, j int) bool {
		return criticalParts[i].CriticalDue.Before(*criticalParts[j].CriticalDue)
	})
	if len(criticalParts) > 10 {
		criticalParts = criticalParts[:10]
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"summary":              summary,
			"totalAllocationGap":   totalGap,
			"unmatchedSalesOrders": len(unmatched),
			"redParts":             redParts,
			"criticalParts":        criticalParts,
		},
	})
}
