package routes

import (
	productController "github.com/Bibekgupta777/Medicure-Pharmacy/controllers/products"
	"github.com/Bibekgupta777/Medicure-Pharmacy/middlewares"

	"github.com/gofiber/fiber/v2"
)

func ProductRoutes(app *fiber.App) {
	app.Get("/api/products", productController.GetAllProducts)
	app.Get("/api/products/categories", productController.GetCategories)
	app.Get("/api/products/slug/:slug", productController.GetProductBySlug)
	app.Get("/api/products/:id", productController.GetProductByID)

	app.Post("/api/products", middlewares.AuthMiddleware, middlewares.AdminMiddleware, productController.AddProduct)
	app.Put("/api/products/:id", middlewares.AuthMiddleware, middlewares.AdminMiddleware, productController.UpdateProduct)
	app.Delete("/api/products/:id", middlewares.AuthMiddleware, middlewares.AdminMiddleware, productController.DeleteProduct)
}
