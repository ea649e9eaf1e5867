package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Bibekgupta777/Medicure-Pharmacy/configs"
	"github.com/Bibekgupta777/Medicure-Pharmacy/middlewares"
	"github.com/Bibekgupta777/Medicure-Pharmacy/models"
	"github.com/Bibekgupta777/Medicure-Pharmacy/notifications"
	"github.com/Bibekgupta777/Medicure-Pharmacy/pricing"
	"github.com/Bibekgupta777/Medicure-Pharmacy/responses"
)

var orderCollection *mongo.Collection = configs.GetCollection(configs.DB, "orders")
var userCollection *mongo.Collection = configs.GetCollection(configs.DB, "users")
var productCollection *mongo.Collection = configs.GetCollection(configs.DB, "products")

var mailer = func() *notifications.Mailer {
	c := configs.Load()
	return notifications.NewMailer(c.MailgunDomain, c.MailgunAPIKey, c.MailFrom, c.BaseURL)
}()

// CreateOrderRequest holds the checkout payload: the selected items, a
// write-once shipping address and the chosen payment method. A cart may
// hold more items than are submitted here; only what arrives is priced.
type CreateOrderRequest struct {
	OrderItems []struct {
		Product      string `json:"product"`
		Quantity     int    `json:"quantity"`
		Prescription string `json:"prescription"`
	} `json:"orderItems"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

type PayOrderRequest struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	UpdateTime    string `json:"update_time"`
	EmailAddress  string `json:"email_address"`
	PaymentMethod string `json:"paymentMethod"`
}

type SetStatusRequest struct {
	DeliveryStatus string `json:"deliveryStatus"`
}

func CreateOrder(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	principal, ok := middlewares.GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}

	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if len(req.OrderItems) == 0 {
		return badRequest(c, models.ErrEmptyCart.Error())
	}
	if req.PaymentMethod != "COD" && req.PaymentMethod != "Online" {
		return badRequest(c, "Payment method must be COD or Online")
	}
	if msg, ok := validateAddress(req.ShippingAddress); !ok {
		return badRequest(c, msg)
	}

	// Resolve the requested products from the catalog: prices, names
	// and the regulated set all come from the product documents as
	// they exist right now, never from the client body.
	inputs := make([]models.OrderItemInput, 0, len(req.OrderItems))
	catalog := make(map[primitive.ObjectID]models.Product, len(req.OrderItems))
	for _, reqItem := range req.OrderItems {
		productID, err := primitive.ObjectIDFromHex(reqItem.Product)
		if err != nil {
			return badRequest(c, "Invalid product ID format")
		}

		var product models.Product
		if err := productCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
			if err == mongo.ErrNoDocuments {
				return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
					Status:  fiber.StatusNotFound,
					Message: "Product not found",
				})
			}
			return internalError(c, "Error fetching product details")
		}

		catalog[product.ID] = product
		inputs = append(inputs, models.OrderItemInput{
			Product:      productID,
			Quantity:     reqItem.Quantity,
			Prescription: reqItem.Prescription,
		})
	}

	items, regulated, err := models.BuildOrderItems(inputs, catalog)
	if err != nil {
		return badRequest(c, err.Error())
	}

	if err := models.ValidatePrescriptions(items, regulated); err != nil {
		return badRequest(c, err.Error())
	}

	totals := pricing.Calculate(items)

	now := time.Now()
	order := models.Order{
		ID:              primitive.NewObjectID(),
		UserID:          principal.ID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      totals.ItemsPrice,
		ShippingPrice:   totals.ShippingPrice,
		DiscountPrice:   totals.DiscountPrice,
		TotalPrice:      totals.TotalPrice,
		IsPaid:          false,
		IsDelivered:     false,
		IsCancelled:     false,
		DeliveryStatus:  models.DeliveryPending,
		Revision:        0,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := orderCollection.InsertOne(ctx, order); err != nil {
		return internalError(c, "Failed to create order")
	}

	return c.Status(fiber.StatusCreated).JSON(responses.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "New Order Created",
		Result:  &fiber.Map{"order": order},
	})
}

// GetAllOrders is the admin listing, with the owning user's name and
// email joined in.
func GetAllOrders(c *fiber.Ctx) error {
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
		{{Key: "$addFields", Value: bson.M{
			"userName":  "$userInfo.name",
			"userEmail": "$userInfo.email",
		}}},
		{{Key: "$project", Value: bson.M{"userInfo": 0}}},
		{{Key: "$sort", Value: bson.M{"createdAt": -1}}},
	}

	cursor, err := orderCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return internalError(c, "Failed to fetch orders")
	}
	defer cursor.Close(ctx)

	var orders []bson.M
	if err := cursor.All(ctx, &orders); err != nil {
		return internalError(c, "Failed to decode orders")
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Orders fetched successfully",
		Result:  &fiber.Map{"orders": orders},
	})
}

// GetOrderSummary aggregates the admin dashboard numbers: order count and
// total sales, user count, a daily order series and category counts.
func GetOrderSummary(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	ordersCursor, err := orderCollection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":        nil,
			"numOrders":  bson.M{"$sum": 1},
			"totalSales": bson.M{"$sum": "$totalPrice"},
		}}},
	})
	if err != nil {
		return internalError(c, "Failed to aggregate orders")
	}
	var orders []bson.M
	if err := ordersCursor.All(ctx, &orders); err != nil {
		return internalError(c, "Failed to decode order summary")
	}

	usersCursor, err := userCollection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": nil, "numUsers": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return internalError(c, "Failed to aggregate users")
	}
	var users []bson.M
	if err := usersCursor.All(ctx, &users); err != nil {
		return internalError(c, "Failed to decode user summary")
	}

	dailyCursor, err := orderCollection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":    bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$createdAt"}},
			"orders": bson.M{"$sum": 1},
			"sales":  bson.M{"$sum": "$totalPrice"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	})
	if err != nil {
		return internalError(c, "Failed to aggregate daily orders")
	}
	var dailyOrders []bson.M
	if err := dailyCursor.All(ctx, &dailyOrders); err != nil {
		return internalError(c, "Failed to decode daily orders")
	}

	categoriesCursor, err := productCollection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$category", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return internalError(c, "Failed to aggregate product categories")
	}
	var productCategories []bson.M
	if err := categoriesCursor.All(ctx, &productCategories); err != nil {
		return internalError(c, "Failed to decode product categories")
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Summary fetched successfully",
		Result: &fiber.Map{
			"orders":            orders,
			"users":             users,
			"dailyOrders":       dailyOrders,
			"productCategories": productCategories,
		},
	})
}

func GetMyOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	principal, ok := middlewares.GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}

	cursor, err := orderCollection.Find(ctx, bson.M{"user": principal.ID})
	if err != nil {
		return internalError(c, "Failed to fetch orders")
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return internalError(c, "Failed to decode orders")
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Orders fetched successfully",
		Result:  &fiber.Map{"orders": orders},
	})
}

func GetOrderByID(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	principal, ok := middlewares.GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}

	order, errResp := findOrder(ctx, c)
	if errResp != nil {
		return errResp(c)
	}

	if !order.CanBeViewedBy(principal) {
		return forbidden(c, "Not authorized to view this order")
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Order fetched successfully",
		Result:  &fiber.Map{"order": order},
	})
}

// PayOrder records the payment result the client received from the
// gateway. Admins may also force-mark an order paid, e.g. reconciling a
// COD settlement. Re-paying an already paid order re-applies the same
// fields; the confirmation mail is fire-and-forget either way.
func PayOrder(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	principal, ok := middlewares.GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}

	var req PayOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	order, errResp := findOrder(ctx, c)
	if errResp != nil {
		return errResp(c)
	}

	if !principal.IsAdmin && principal.ID != order.UserID {
		return forbidden(c, "Not authorized to pay for this order")
	}

	order.MarkPaid(models.PaymentResult{
		ID:           req.ID,
		Status:       req.Status,
		UpdateTime:   models.PaymentTime(req.UpdateTime, time.Now()),
		EmailAddress: req.EmailAddress,
	}, req.PaymentMethod, time.Now())

	if errResp := saveOrder(ctx, order); errResp != nil {
		return errResp(c)
	}

	var user models.User
	if err := userCollection.FindOne(ctx, bson.M{"_id": order.UserID}).Decode(&user); err == nil {
		go mailer.SendOrderPaid(*order, user)
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Order Paid",
		Result:  &fiber.Map{"order": order},
	})
}

func DeliverOrder(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	order, errResp := findOrder(ctx, c)
	if errResp != nil {
		return errResp(c)
	}

	if err := order.MarkDelivered(time.Now()); err != nil {
		return badRequest(c, err.Error())
	}

	if errResp := saveOrder(ctx, order); errResp != nil {
		return errResp(c)
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Order Delivered",
		Result:  &fiber.Map{"order": order},
	})
}

func CancelOrder(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	principal, ok := middlewares.GetPrincipal(c)
	if !ok {
		return unauthorized(c)
	}

	order, errResp := findOrder(ctx, c)
	if errResp != nil {
		return errResp(c)
	}

	if !order.CanBeCancelledBy(principal) {
		return forbidden(c, "Not authorized to cancel this order")
	}

	if err := order.Cancel(time.Now()); err != nil {
		return badRequest(c, err.Error())
	}

	if errResp := saveOrder(ctx, order); errResp != nil {
		return errResp(c)
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Order cancelled",
		Result:  &fiber.Map{"order": order},
	})
}

func SetOrderStatus(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var req SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	order, errResp := findOrder(ctx, c)
	if errResp != nil {
		return errResp(c)
	}

	if err := order.SetDeliveryStatus(models.DeliveryStatus(req.DeliveryStatus), time.Now()); err != nil {
		return badRequest(c, err.Error())
	}

	if errResp := saveOrder(ctx, order); errResp != nil {
		return errResp(c)
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Delivery status updated",
		Result:  &fiber.Map{"order": order},
	})
}

func DeleteOrder(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	orderID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid order ID format")
	}

	result, err := orderCollection.DeleteOne(ctx, bson.M{"_id": orderID})
	if err != nil {
		return internalError(c, "Failed to delete order")
	}
	if result.DeletedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Order Not Found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Order deleted",
	})
}

type errorResponder func(*fiber.Ctx) error

// findOrder loads the order addressed by the :id path parameter.
func findOrder(ctx context.Context, c *fiber.Ctx) (*models.Order, errorResponder) {
	orderID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return nil, func(c *fiber.Ctx) error {
			return badRequest(c, "Invalid order ID format")
		}
	}

	var order models.Order
	if err := orderCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
					Status:  fiber.StatusNotFound,
					Message: "Order Not Found",
				})
			}
		}
		return nil, func(c *fiber.Ctx) error {
			return internalError(c, "Failed to fetch order")
		}
	}
	return &order, nil
}

// saveOrder persists the mutable fields of an order with an optimistic
// revision check. A concurrent writer bumps the revision first and the
// stale write comes back as a conflict instead of silently winning.
func saveOrder(ctx context.Context, order *models.Order) errorResponder {
	update := bson.M{
		"$set": bson.M{
			"paymentMethod":  order.PaymentMethod,
			"paymentResult":  order.PaymentResult,
			"isPaid":         order.IsPaid,
			"paidAt":         order.PaidAt,
			"isDelivered":    order.IsDelivered,
			"deliveredAt":    order.DeliveredAt,
			"isCancelled":    order.IsCancelled,
			"deliveryStatus": order.DeliveryStatus,
			"updatedAt":      order.UpdatedAt,
		},
		"$inc": bson.M{"revision": 1},
	}

	result, err := orderCollection.UpdateOne(ctx, bson.M{"_id": order.ID, "revision": order.Revision}, update)
	if err != nil {
		return func(c *fiber.Ctx) error {
			return internalError(c, "Failed to update order")
		}
	}
	if result.MatchedCount == 0 {
		return func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusConflict).JSON(responses.ApiResponse{
				Status:  fiber.StatusConflict,
				Message: "Order was modified concurrently, please retry",
			})
		}
	}
	order.Revision++
	return nil
}

func validateAddress(addr models.ShippingAddress) (string, bool) {
	switch {
	case addr.FullName == "":
		return "Shipping address full name is required", false
	case addr.Address == "":
		return "Shipping address street is required", false
	case addr.City == "":
		return "Shipping address city is required", false
	case addr.PostalCode == "":
		return "Shipping address postal code is required", false
	case addr.Country == "":
		return "Shipping address country is required", false
	}
	return "", true
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(responses.ApiResponse{
		Status:  fiber.StatusUnauthorized,
		Message: "User not found in token",
	})
}

func forbidden(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusForbidden).JSON(responses.ApiResponse{
		Status:  fiber.StatusForbidden,
		Message: msg,
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
		Status:  fiber.StatusBadRequest,
		Message: msg,
	})
}

func internalError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
		Status:  fiber.StatusInternalServerError,
		Message: msg,
	})
}
