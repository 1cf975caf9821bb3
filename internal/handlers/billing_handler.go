package handlers

import (
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/services"
	"github.com/gofiber/fiber/v2"
)

type BillingHandler struct {
	billingService *services.BillingService
}

func NewBillingHandler(billingService *services.BillingService) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
	}
}

// GetPlans godoc
// @Summary List available plans
// @Tags Billing
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /billing/plans [get]
func (h *BillingHandler) GetPlans(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"plans": services.PlanPrices})
}

// GetSubscription godoc
// @Summary Get the active subscription
// @Tags Billing
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} models.Subscription
// @Failure 404 {object} map[string]interface{}
// @Router /billing/subscription [get]
func (h *BillingHandler) GetSubscription(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	sub, err := h.billingService.Subscription(clientID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(sub)
}

// CreatePlanCheckout godoc
// @Summary Start a plan checkout
// @Tags Billing
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param checkout body object{plan=string} true "Plan to buy"
// @Success 200 {object} payment.Session
// @Failure 400 {object} map[string]interface{}
// @Router /billing/checkout/plan [post]
func (h *BillingHandler) CreatePlanCheckout(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	var req struct {
		Plan string `json:"plan"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	session, err := h.billingService.CreatePlanCheckout(c.Context(), clientID, req.Plan)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(session)
}

// CreateTokenCheckout godoc
// @Summary Start a token pack checkout
// @Tags Billing
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param checkout body object{token_count=int} true "Tokens to buy (multiple of 1000)"
// @Success 200 {object} payment.Session
// @Failure 400 {object} map[string]interface{}
// @Router /billing/checkout/tokens [post]
func (h *BillingHandler) CreateTokenCheckout(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	var req struct {
		TokenCount int `json:"token_count"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	session, err := h.billingService.CreateTokenCheckout(c.Context(), clientID, req.TokenCount)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(session)
}

// Webhook godoc
// @Summary Checkout provider webhook
// @Description Signature-verified callback from the checkout provider
// @Tags Billing
// @Accept json
// @Produce json
// @Param X-Checkout-Signature header string true "HMAC signature"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /billing/webhook [post]
func (h *BillingHandler) Webhook(c *fiber.Ctx) error {
	signature := c.Get("X-Checkout-Signature")
	if err := h.billingService.HandleWebhook(c.Body(), signature); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"message": "ok"})
}

// CompleteSandbox godoc
// @Summary Settle a sandbox checkout
// @Description Development helper that plays the provider's webhook for a sandbox session
// @Tags Billing
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /billing/sandbox/{id}/complete [post]
func (h *BillingHandler) CompleteSandbox(c *fiber.Ctx) error {
	_, _, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	if err := h.billingService.CompleteSandboxSession(c.Params("id")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"message": "Checkout completed"})
}

// GetTokenSummary godoc
// @Summary Get token balances and usage
// @Tags Billing
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} models.TokenSummary
// @Router /billing/tokens [get]
func (h *BillingHandler) GetTokenSummary(c *fiber.Ctx) error {
	_, clientID, ok := requireIdentity(c)
	if !ok {
		return nil
	}

	summary, err := h.billingService.TokenSummary(clientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(summary)
}
