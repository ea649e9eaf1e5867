package routes

import (
	userController "github.com/Bibekgupta777/Medicure-Pharmacy/controllers/user"
	"github.com/Bibekgupta777/Medicure-Pharmacy/middlewares"

	"github.com/gofiber/fiber/v2"
)

func UserRoutes(app *fiber.App) {
	app.Post("/api/users/signup", userController.UserSignUp)
	app.Post("/api/users/signin", userController.UserSignIn)
	app.Post("/api/users/forgot-password", userController.ForgotPassword)
	app.Post("/api/users/reset-password", userController.ResetPassword)
	app.Put("/api/users/profile", middlewares.AuthMiddleware, userController.UpdateProfile)

	app.Get("/api/users", middlewares.AuthMiddleware, middlewares.AdminMiddleware, userController.GetAllUsers)
	app.Get("/api/users/:id", middlewares.AuthMiddleware, middlewares.AdminMiddleware, userController.GetUserByID)
	app.Put("/api/users/:id", middlewares.AuthMiddleware, middlewares.AdminMiddleware, userController.UpdateUser)
	app.Delete("/api/users/:id", middlewares.AuthMiddleware, middlewares.AdminMiddleware, userController.DeleteUser)
}
