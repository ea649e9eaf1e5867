package controllers

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Bibekgupta777/Medicure-Pharmacy/configs"
	"github.com/Bibekgupta777/Medicure-Pharmacy/models"
	"github.com/Bibekgupta777/Medicure-Pharmacy/responses"
)

var productCollection *mongo.Collection = configs.GetCollection(configs.DB, "products")

// GetAllProducts lists the catalog with optional name search, category
// filter and pagination.
func GetAllProducts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	query := c.Query("query", "")
	category := c.Query("category", "")
	pageStr := c.Query("page", "1")
	limitStr := c.Query("limit", "12")

	page, err := strconv.ParseInt(pageStr, 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.ParseInt(limitStr, 10, 64)
	if err != nil || limit < 1 {
		limit = 12
	}
	skip := (page - 1) * limit

	filter := bson.M{}
	if query != "" {
		filter["name"] = bson.M{"$regex": query, "$options": "i"}
	}
	if category != "" {
		filter["category"] = category
	}

	total, err := productCollection.CountDocuments(ctx, filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to count products",
		})
	}

	cursor, err := productCollection.Find(ctx, filter, &options.FindOptions{
		Skip:  &skip,
		Limit: &limit,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch products",
		})
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to decode products",
		})
	}

	totalPages := (total + limit - 1) / limit

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Products fetched successfully",
		Result: &fiber.Map{
			"products":    products,
			"currentPage": page,
			"totalPages":  totalPages,
			"total":       total,
		},
	})
}

func GetProductByID(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	productID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid product ID format",
		})
	}

	var product models.Product
	if err := productCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Product Not Found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Product fetched successfully",
		Result:  &fiber.Map{"product": product},
	})
}

func GetProductBySlug(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := productCollection.FindOne(ctx, bson.M{"slug": c.Params("slug")}).Decode(&product); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Product Not Found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Product fetched successfully",
		Result:  &fiber.Map{"product": product},
	})
}

func GetCategories(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	categories, err := productCollection.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch categories",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Categories fetched successfully",
		Result:  &fiber.Map{"categories": categories},
	})
}

func AddProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if product.Name == "" || product.Slug == "" || product.Category == "" || product.Price <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Name, slug, category and a positive price are required",
		})
	}

	now := time.Now()
	product.ID = primitive.NewObjectID()
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := productCollection.InsertOne(ctx, product); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create product",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(responses.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Product created successfully",
		Result:  &fiber.Map{"product": product},
	})
}

func UpdateProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	productID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid product ID format",
		})
	}

	var reqBody struct {
		Name                 *string  `json:"name"`
		Slug                 *string  `json:"slug"`
		Brand                *string  `json:"brand"`
		Description          *string  `json:"description"`
		Category             *string  `json:"category"`
		Image                *string  `json:"image"`
		Price                *float64 `json:"price"`
		CountInStock         *int     `json:"countInStock"`
		RequiresPrescription *bool    `json:"requiresPrescription"`
	}
	if err := c.BodyParser(&reqBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	set := bson.M{"updatedAt": time.Now()}
	if reqBody.Name != nil {
		set["name"] = *reqBody.Name
	}
	if reqBody.Slug != nil {
		set["slug"] = *reqBody.Slug
	}
	if reqBody.Brand != nil {
		set["brand"] = *reqBody.Brand
	}
	if reqBody.Description != nil {
		set["description"] = *reqBody.Description
	}
	if reqBody.Category != nil {
		set["category"] = *reqBody.Category
	}
	if reqBody.Image != nil {
		set["image"] = *reqBody.Image
	}
	if reqBody.Price != nil {
		if *reqBody.Price <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Price must be positive",
			})
		}
		set["price"] = *reqBody.Price
	}
	if reqBody.CountInStock != nil {
		set["countInStock"] = *reqBody.CountInStock
	}
	if reqBody.RequiresPrescription != nil {
		set["requiresPrescription"] = *reqBody.RequiresPrescription
	}

	result, err := productCollection.UpdateOne(ctx, bson.M{"_id": productID}, bson.M{"$set": set})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update product",
		})
	}
	if result.MatchedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Product Not Found",
		})
	}

	var product models.Product
	if err := productCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch updated product",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Product updated",
		Result:  &fiber.Map{"product": product},
	})
}

func DeleteProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	productID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid product ID format",
		})
	}

	result, err := productCollection.DeleteOne(ctx, bson.M{"_id": productID})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to delete product",
		})
	}
	if result.DeletedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Product Not Found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Product deleted",
	})
}
