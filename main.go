package main

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/Bibekgupta777/Medicure-Pharmacy/configs"
	"github.com/Bibekgupta777/Medicure-Pharmacy/logging"
	"github.com/Bibekgupta777/Medicure-Pharmacy/routes"
)

func main() {
	slog.SetDefault(logging.New())

	cfg := configs.Load()

	app := fiber.New(fiber.Config{
		BodyLimit: 6 * 1024 * 1024, // leaves headroom over the 5MB upload ceiling
	})

	configs.ConnectDB()

	routes.UserRoutes(app)
	routes.ProductRoutes(app)
	routes.OrderRoutes(app)
	routes.UploadRoutes(app)
	routes.PrescriptionRoutes(app)
	routes.PaymentRoutes(app)
	routes.MessageRoutes(app)

	// Uploaded prescription images are served back by reference.
	app.Static("/uploads", cfg.UploadDir)

	slog.Info("server starting", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "error", err)
	}
}
