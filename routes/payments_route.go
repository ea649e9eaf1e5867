package routes

import (
	paymentController "github.com/Bibekgupta777/Medicure-Pharmacy/controllers/payments"
	"github.com/Bibekgupta777/Medicure-Pharmacy/middlewares"

	"github.com/gofiber/fiber/v2"
)

func PaymentRoutes(app *fiber.App) {
	app.Post("/api/payments/create-intent", middlewares.AuthMiddleware, paymentController.CreateIntent)
}
