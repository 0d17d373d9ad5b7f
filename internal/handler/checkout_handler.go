package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/quantumcloud/quantumcloud-backend/internal/controller"
	"github.com/quantumcloud/quantumcloud-backend/internal/models"
	"github.com/quantumcloud/quantumcloud-backend/internal/service"
)

// CheckoutHandler owns POST /api/billing/checkout. It does its own auth
// handling instead of going through the middleware because the response
// contract (CORS headers on every response, planId validated before the
// bearer token) predates this service and the hosted frontend depends
// on it.
type CheckoutHandler struct {
	billingController *controller.BillingController
}

func NewCheckoutHandler(billingController *controller.BillingController) *CheckoutHandler {
	return &CheckoutHandler{
		billingController: billingController,
	}
}

func setCheckoutCORSHeaders(c *fiber.Ctx) {
	c.Set("Access-Control-Allow-Origin", "*")
	c.Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
}

// Preflight answers the OPTIONS probe with no auth check.
func (h *CheckoutHandler) Preflight(c *fiber.Ctx) error {
	setCheckoutCORSHeaders(c)
	return c.Status(fiber.StatusOK).Send(nil)
}

func (h *CheckoutHandler) CreateCheckoutSession(c *fiber.Ctx) error {
	setCheckoutCORSHeaders(c)

	// Unparseable bodies are treated as empty so the caller sees a
	// missing-planId error instead of a parse error.
	var req models.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		req = models.CheckoutRequest{}
	}

	session, err := h.billingController.CreateCheckoutSession(
		c.Get("Authorization"),
		req.PlanID,
		c.Get("Origin"),
	)
	if err != nil {
		return c.Status(service.StatusForError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"url": session.URL,
	})
}
