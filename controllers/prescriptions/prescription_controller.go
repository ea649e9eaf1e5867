package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Bibekgupta777/Medicure-Pharmacy/configs"
	"github.com/Bibekgupta777/Medicure-Pharmacy/middlewares"
	"github.com/Bibekgupta777/Medicure-Pharmacy/models"
	"github.com/Bibekgupta777/Medicure-Pharmacy/responses"
)

var prescriptionCollection *mongo.Collection = configs.GetCollection(configs.DB, "prescriptions")

// CreatePrescription files a standalone prescription record for admin
// review. The image reference comes from the upload endpoint; no bytes
// are accepted here.
func CreatePrescription(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	principal, ok := middlewares.GetPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User not found in token",
		})
	}

	var reqBody struct {
		ProductID string `json:"productId"`
		ImageRef  string `json:"imageRef"`
	}
	if err := c.BodyParser(&reqBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if reqBody.ImageRef == "" {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Image reference is required",
		})
	}

	productID, err := primitive.ObjectIDFromHex(reqBody.ProductID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid product ID format",
		})
	}

	prescription := models.Prescription{
		ID:        primitive.NewObjectID(),
		UserID:    principal.ID,
		ProductID: productID,
		Image:     reqBody.ImageRef,
		CreatedAt: time.Now(),
	}

	if _, err := prescriptionCollection.InsertOne(ctx, prescription); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to save prescription",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(responses.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Prescription saved",
		Result:  &fiber.Map{"prescription": prescription},
	})
}

// GetAllPrescriptions is the admin review listing with the user's
// name/email and product name joined in.
func GetAllPrescriptions(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "user",
			"foreignField": "_id",
			"as":           "userInfo",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$userInfo", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "products",
			"localField":   "product",
			"foreignField": "_id",
			"as":           "productInfo",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$productInfo", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$addFields", Value: bson.M{
			"userName":    "$userInfo.name",
			"userEmail":   "$userInfo.email",
			"productName": "$productInfo.name",
		}}},
		{{Key: "$project", Value: bson.M{"userInfo": 0, "productInfo": 0}}},
		{{Key: "$sort", Value: bson.M{"createdAt": -1}}},
	}

	cursor, err := prescriptionCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch prescriptions",
		})
	}
	defer cursor.Close(ctx)

	var prescriptions []bson.M
	if err := cursor.All(ctx, &prescriptions); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to decode prescriptions",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Prescriptions fetched successfully",
		Result:  &fiber.Map{"prescriptions": prescriptions},
	})
}
