package controllers

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Bibekgupta777/Medicure-Pharmacy/configs"
	"github.com/Bibekgupta777/Medicure-Pharmacy/responses"
)

// Uploaded files are evidence blobs; content is never interpreted here.
const maxUploadSize = 5 * 1024 * 1024

var filenameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// UploadPrescription stores a multipart "file" under the upload dir and
// returns a stable URL the caller attaches to line items or prescription
// records.
func UploadPrescription(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "No file uploaded",
		})
	}

	if fileHeader.Size > maxUploadSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(responses.ApiResponse{
			Status:  fiber.StatusRequestEntityTooLarge,
			Message: "File exceeds the 5MB limit",
		})
	}

	dir := filepath.Join(configs.Load().UploadDir, "prescriptions")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to prepare upload directory",
		})
	}

	sanitized := filenameSanitizer.ReplaceAllString(filepath.Base(fileHeader.Filename), "-")
	filename := fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), uuid.NewString()[:8], sanitized)

	if err := c.SaveFile(fileHeader, filepath.Join(dir, filename)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to save file",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "File uploaded successfully",
		Result:  &fiber.Map{"url": "/uploads/prescriptions/" + filename},
	})
}
