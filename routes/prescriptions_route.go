package routes

import (
	prescriptionController "github.com/Bibekgupta777/Medicure-Pharmacy/controllers/prescriptions"
	"github.com/Bibekgupta777/Medicure-Pharmacy/middlewares"

	"github.com/gofiber/fiber/v2"
)

func PrescriptionRoutes(app *fiber.App) {
	app.Post("/api/prescriptions", middlewares.AuthMiddleware, prescriptionController.CreatePrescription)
	app.Get("/api/prescriptions", middlewares.AuthMiddleware, middlewares.AdminMiddleware, prescriptionController.GetAllPrescriptions)
}
