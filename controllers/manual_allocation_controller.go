package controllers

import (
	"time"

	"eyefi-app/models"
	"eyefi-app/repositories"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var validate = validator.New()

// ManualAllocationController handles planner overrides: manual WO/SO
// assignments, reassignment, locks, SO priorities and the audit trail.
type ManualAllocationController struct {
	DB *gorm.DB
}

func NewManualAllocationController(DB *gorm.DB) *ManualAllocationController {
	return &ManualAllocationController{DB: DB}
}

func (c *ManualAllocationController) GetManualAllocations(ctx *fiber.Ctx) error {
	partNumber := ctx.Query("partNumber")
	if partNumber == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "partNumber query parameter is required"})
	}

	repo := repositories.NewManualAllocationRepository(c.DB)
	allocations, err := repo.GetManualAllocations(partNumber)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": allocations})
}

type manualAllocationInput struct {
	WoNumber       string  `json:"woNumber" validate:"required"`
	SoNumber       string  `json:"soNumber" validate:"required"`
	PartNumber     string  `json:"partNumber" validate:"required"`
	AllocatedQty   float64 `json:"allocatedQuantity" validate:"required,gt=0"`
	AllocationType string  `json:"allocationType"`
	Priority       int     `json:"priority"`
	LockedBy       string  `json:"lockedBy" validate:"required"`
	Reason         string  `json:"reason"`
}

func (c *ManualAllocationController) CreateManualAllocation(ctx *fiber.Ctx) error {
	var payload manualAllocationInput
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := validate.Struct(payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	allocationType := payload.AllocationType
	if allocationType == "" {
		allocationType = "MANUAL"
	}

	m := models.ManualAllocation{
		WoNumber:       payload.WoNumber,
		SoNumber:       payload.SoNumber,
		PartNumber:     payload.PartNumber,
		AllocatedQty:   payload.AllocatedQty,
		AllocationType: allocationType,
		Priority:       payload.Priority,
		LockedBy:       payload.LockedBy,
		Reason:         payload.Reason,
	}

	repo := repositories.NewManualAllocationRepository(c.DB)
	if err := repo.CreateManualAllocation(&m); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": m})
}

type reassignInput struct {
	WoNumber     string  `json:"woNumber" validate:"required"`
	FromSoNumber string  `json:"fromSoNumber" validate:"required"`
	ToSoNumber   string  `json:"toSoNumber" validate:"required"`
	PartNumber   string  `json:"partNumber" validate:"required"`
	Quantity     float64 `json:"quantity" validate:"required,gt=0"`
	Priority     int     `json:"priority"`
	UserID       string  `json:"userId" validate:"required"`
	Reason       string  `json:"reason"`
}

func (c *ManualAllocationController) Reassign(ctx *fiber.Ctx) error {
	var payload reassignInput
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := validate.Struct(payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if payload.FromSoNumber == payload.ToSoNumber {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Source and target sales order are the same"})
	}

	repo := repositories.NewManualAllocationRepository(c.DB)
	err := repo.Reassign(payload.WoNumber, payload.FromSoNumber, payload.ToSoNumber,
		payload.PartNumber, payload.Quantity, payload.Priority, payload.UserID, payload.Reason)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

type lockInput struct {
	WoNumber string     `json:"woNumber" validate:"required"`
	SoNumber string     `json:"soNumber" validate:"required"`
	UserID   string     `json:"userId" validate:"required"`
	LockDate *time.Time `json:"lockDate"`
	Reason   string     `json:"reason"`
}

func (c *ManualAllocationController) Lock(ctx *fiber.Ctx) error {
	var payload lockInput
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := validate.Struct(payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	lockDate := time.Now()
	if payload.LockDate != nil {
		lockDate = *payload.LockDate
	}

	repo := repositories.NewManualAllocationRepository(c.DB)
	if err := repo.Lock(payload.WoNumber, payload.SoNumber, payload.UserID, payload.Reason, lockDate); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

type unlockInput struct {
	WoNumber string `json:"woNumber" validate:"required"`
	SoNumber string `json:"soNumber" validate:"required"`
	UserID   string `json:"userId"`
}

func (c *ManualAllocationController) Unlock(ctx *fiber.Ctx) error {
	var payload unlockInput
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := validate.Struct(payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewManualAllocationRepository(c.DB)
	if err := repo.Unlock(payload.WoNumber, payload.SoNumber, payload.UserID); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

type priorityInput struct {
	SoNumber string `json:"soNumber" validate:"required"`
	Priority int    `json:"priority" validate:"required,min=1,max=3"`
	UserID   string `json:"userId" validate:"required"`
	Reason   string `json:"reason"`
}

func (c *ManualAllocationController) UpdatePriority(ctx *fiber.Ctx) error {
	var payload priorityInput
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := validate.Struct(payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewManualAllocationRepository(c.DB)
	if err := repo.UpdatePriority(payload.SoNumber, payload.Priority, payload.UserID, payload.Reason); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

func (c *ManualAllocationController) GetAuditTrail(ctx *fiber.Ctx) error {
	filter := repositories.AuditFilter{
		PartNumber: ctx.Query("partNumber"),
		WoNumber:   ctx.Query("woNumber"),
		SoNumber:   ctx.Query("soNumber"),
	}

	repo := repositories.NewManualAllocationRepository(c.DB)
	entries, err := repo.GetAuditTrail(filter)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": entries})
}

type auditInput struct {
	WoNumber           string  `json:"woNumber"`
	SoNumber           string  `json:"soNumber"`
	PartNumber         string  `json:"partNumber"`
	Action             string  `json:"action" validate:"required"`
	PreviousAllocation *string `json:"previousAllocation"`
	NewAllocation      string  `json:"newAllocation"`
	Quantity           float64 `json:"quantity"`
	UserID             string  `json:"userId" validate:"required"`
	Reason             string  `json:"reason"`
}

func (c *ManualAllocationController) AppendAuditEntry(ctx *fiber.Ctx) error {
	var payload auditInput
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if err := validate.Struct(payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	entry := models.AllocationAuditEntry{
		WoNumber:           payload.WoNumber,
		SoNumber:           payload.SoNumber,
		PartNumber:         payload.PartNumber,
		Action:             payload.Action,
		PreviousAllocation: payload.PreviousAllocation,
		NewAllocation:      payload.NewAllocation,
		Quantity:           payload.Quantity,
		UserID:             payload.UserID,
		Reason:             payload.Reason,
	}

	repo := repositories.NewManualAllocationRepository(c.DB)
	if err := repo.AppendAudit(&entry); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": entry})
}
