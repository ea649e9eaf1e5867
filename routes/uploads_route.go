package routes

import (
	uploadController "github.com/Bibekgupta777/Medicure-Pharmacy/controllers/uploads"
	"github.com/Bibekgupta777/Medicure-Pharmacy/middlewares"

	"github.com/gofiber/fiber/v2"
)

func UploadRoutes(app *fiber.App) {
	app.Post("/api/uploads/prescription", middlewares.AuthMiddleware, uploadController.UploadPrescription)
}
