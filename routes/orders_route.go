package routes

import (
	orderController "github.com/Bibekgupta777/Medicure-Pharmacy/controllers/orders"
	"github.com/Bibekgupta777/Medicure-Pharmacy/middlewares"

	"github.com/gofiber/fiber/v2"
)

func OrderRoutes(app *fiber.App) {
	app.Post("/api/orders", middlewares.AuthMiddleware, orderController.CreateOrder)
	app.Get("/api/orders/summary", middlewares.AuthMiddleware, middlewares.AdminMiddleware, orderController.GetOrderSummary)
	app.Get("/api/orders/mine", middlewares.AuthMiddleware, orderController.GetMyOrders)
	app.Get("/api/orders", middlewares.AuthMiddleware, middlewares.AdminMiddleware, orderController.GetAllOrders)
	app.Get("/api/orders/:id", middlewares.AuthMiddleware, orderController.GetOrderByID)
	app.Put("/api/orders/:id/pay", middlewares.AuthMiddleware, orderController.PayOrder)
	app.Put("/api/orders/:id/deliver", middlewares.AuthMiddleware, middlewares.AdminMiddleware, orderController.DeliverOrder)
	app.Put("/api/orders/:id/cancel", middlewares.AuthMiddleware, orderController.CancelOrder)
	app.Put("/api/orders/:id/status", middlewares.AuthMiddleware, middlewares.AdminMiddleware, orderController.SetOrderStatus)
	app.Delete("/api/orders/:id", middlewares.AuthMiddleware, middlewares.AdminMiddleware, orderController.DeleteOrder)
}
