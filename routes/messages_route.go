package routes

import (
	messageController "github.com/Bibekgupta777/Medicure-Pharmacy/controllers/messages"
	"github.com/Bibekgupta777/Medicure-Pharmacy/middlewares"

	"github.com/gofiber/fiber/v2"
)

func MessageRoutes(app *fiber.App) {
	app.Post("/api/messages", messageController.CreateMessage)
	app.Get("/api/messages", middlewares.AuthMiddleware, middlewares.AdminMiddleware, messageController.GetAllMessages)
	app.Delete("/api/messages/:id", middlewares.AuthMiddleware, middlewares.AdminMiddleware, messageController.DeleteMessage)
}
