package middlewares

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Bibekgupta777/Medicure-Pharmacy/auth"
	"github.com/Bibekgupta777/Medicure-Pharmacy/configs"
	"github.com/Bibekgupta777/Medicure-Pharmacy/models"
	"github.com/Bibekgupta777/Medicure-Pharmacy/responses"
)

const principalKey = "principal"

// AuthMiddleware verifies the bearer token and stores the principal in
// Locals for the handlers downstream.
func AuthMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "No auth token, access denied",
		})
	}

	bearerToken := strings.Split(authHeader, " ")
	if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid authorization header format",
		})
	}

	principal, err := auth.VerifyToken(bearerToken[1], configs.Load().JWTSecret)
	if err != nil {
		msg := "Token verification failed, access denied"
		if errors.Is(err, auth.ErrExpiredToken) {
			msg = "Token expired, please sign in again"
		}
		return c.Status(fiber.StatusUnauthorized).JSON(responses.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: msg,
		})
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// AdminMiddleware must run after AuthMiddleware.
func AdminMiddleware(c *fiber.Ctx) error {
	principal, ok := c.Locals(principalKey).(models.Principal)
	if !ok || !principal.IsAdmin {
		return c.Status(fiber.StatusForbidden).JSON(responses.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: "Admin access required",
		})
	}
	return c.Next()
}

// GetPrincipal pulls the verified principal a middleware stored earlier.
func GetPrincipal(c *fiber.Ctx) (models.Principal, bool) {
	principal, ok := c.Locals(principalKey).(models.Principal)
	return principal, ok
}
