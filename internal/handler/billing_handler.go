package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/quantumcloud/quantumcloud-backend/internal/controller"
	"github.com/quantumcloud/quantumcloud-backend/internal/models"
	"github.com/stripe/stripe-go/v74/webhook"
	"go.uber.org/zap"
)

type BillingHandler struct {
	billingController *controller.BillingController
	webhookSecret     string
	logger            *zap.Logger
}

func NewBillingHandler(billingController *controller.BillingController, webhookSecret string, logger *zap.Logger) *BillingHandler {
	return &BillingHandler{
		billingController: billingController,
		webhookSecret:     webhookSecret,
		logger:            logger,
	}
}

func (h *BillingHandler) HandleStripeWebhook(c *fiber.Ctx) error {
	event, err := webhook.ConstructEventWithOptions(
		c.Body(),
		c.Get("Stripe-Signature"),
		h.webhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		},
	)
	if err != nil {
		h.logger.Warn("webhook signature verification failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid webhook signature"))
	}

	if err := h.billingController.HandleStripeEvent(&event); err != nil {
		h.logger.Error("webhook processing failed",
			zap.String("event_id", event.ID),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *BillingHandler) GetPurchaseHistory(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	purchases, err := h.billingController.GetPurchaseHistory(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(purchases, ""))
}
