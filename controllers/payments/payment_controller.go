package controllers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/razorpay/razorpay-go"

	"github.com/Bibekgupta777/Medicure-Pharmacy/configs"
	"github.com/Bibekgupta777/Medicure-Pharmacy/pricing"
	"github.com/Bibekgupta777/Medicure-Pharmacy/responses"
)

var razorpayKeyID = configs.Load().RazorpayKeyID
var razorpayKeySecret = configs.Load().RazorpayKeySecret

type CreateIntentRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// CreateIntent opens a payment with the gateway and hands the client what
// it needs to confirm: confirmation happens client-side, the API only
// sees the result later via the pay transition.
func CreateIntent(c *fiber.Ctx) error {
	var req CreateIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if req.Amount <= 0 || req.Currency == "" {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Amount and currency required",
		})
	}

	client := razorpay.NewClient(razorpayKeyID, razorpayKeySecret)

	// Gateway amounts are in the smallest currency unit.
	data := map[string]interface{}{
		"amount":   pricing.ToSubunits(req.Amount),
		"currency": req.Currency,
		"receipt":  "receipt_" + uuid.NewString(),
	}

	gatewayOrder, err := client.Order.Create(data, nil)
	if err != nil {
		slog.Error("payment intent creation failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create payment intent",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Payment intent created",
		Result: &fiber.Map{
			"clientSecret": gatewayOrder["id"],
			"keyId":        razorpayKeyID,
			"amount":       gatewayOrder["amount"],
			"currency":     gatewayOrder["currency"],
		},
	})
}
