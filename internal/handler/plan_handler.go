package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/quantumcloud/quantumcloud-backend/internal/models"
)

type PlanHandler struct{}

func NewPlanHandler() *PlanHandler {
	return &PlanHandler{}
}

// GetPlans serves the static plan table the storefront renders.
func (h *PlanHandler) GetPlans(c *fiber.Ctx) error {
	return c.JSON(models.SuccessResponse(models.Plans, ""))
}
