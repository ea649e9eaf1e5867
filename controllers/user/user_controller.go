package controllers

import (
	"context"
	"log/slog"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/Bibekgupta777/Medicure-Pharmacy/auth"
	"github.com/Bibekgupta777/Medicure-Pharmacy/configs"
	"github.com/Bibekgupta777/Medicure-Pharmacy/middlewares"
	"github.com/Bibekgupta777/Medicure-Pharmacy/models"
	"github.com/Bibekgupta777/Medicure-Pharmacy/notifications"
	"github.com/Bibekgupta777/Medicure-Pharmacy/responses"
)

var userCollection *mongo.Collection = configs.GetCollection(configs.DB, "users")

var mailer = func() *notifications.Mailer {
	c := configs.Load()
	return notifications.NewMailer(c.MailgunDomain, c.MailgunAPIKey, c.MailFrom, c.BaseURL)
}()

// The seed admin account cannot be deleted through the API.
const protectedAdminEmail = "admin@example.com"

var emailRegex = regexp.MustCompile(`^(([^<>()[\]\.,;:\s@\"]+(\.[^<>()[\]\.,;:\s@\"]+)*)|(\".+\"))@(([^<>()[\]\.,;:\s@\"]+\.)+[^<>()[\]\.,;:\s@\"]{2,})$`)

func UserSignUp(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var reqBody struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&reqBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request format",
		})
	}

	if reqBody.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Name is required",
		})
	}

	if utf8.RuneCountInString(reqBody.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Passwords must be 8 letters long",
		})
	}

	if !emailRegex.MatchString(reqBody.Email) {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Please enter a valid email address",
		})
	}

	var existingUser models.User
	err := userCollection.FindOne(ctx, bson.M{"email": reqBody.Email}).Decode(&existingUser)
	if err != nil && err != mongo.ErrNoDocuments {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error checking user existence",
		})
	} else if err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "User with same email already exists",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqBody.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error hashing password",
		})
	}

	now := time.Now()
	newUser := models.User{
		Id:        primitive.NewObjectID(),
		Name:      reqBody.Name,
		Email:     reqBody.Email,
		Password:  string(hashedPassword),
		IsAdmin:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := userCollection.InsertOne(ctx, newUser); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error creating user",
		})
	}

	token, err := auth.GenerateToken(newUser, configs.Load().JWTSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error generating token",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(responses.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "User created successfully",
		Result: &fiber.Map{
			"id":      newUser.Id.Hex(),
			"name":    newUser.Name,
			"email":   newUser.Email,
			"isAdmin": newUser.IsAdmin,
			"token":   token,
		},
	})
}

func UserSignIn(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var reqBody struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&reqBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request format",
		})
	}

	var user models.User
	err := userCollection.FindOne(ctx, bson.M{"email": reqBody.Email}).Decode(&user)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqBody.Password)) != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid email or password",
		})
	}

	token, err := auth.GenerateToken(user, configs.Load().JWTSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error generating token",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Signed in successfully",
		Result: &fiber.Map{
			"id":      user.Id.Hex(),
			"name":    user.Name,
			"email":   user.Email,
			"isAdmin": user.IsAdmin,
			"token":   token,
		},
	})
}

// UpdateProfile lets the signed-in user change name, email or password.
// A fresh token is issued because the claims embed name and email.
func UpdateProfile(c *fiber.Ctx) error {
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
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&reqBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request format",
		})
	}

	var user models.User
	if err := userCollection.FindOne(ctx, bson.M{"_id": principal.ID}).Decode(&user); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "User not found",
		})
	}

	if reqBody.Name != "" {
		user.Name = reqBody.Name
	}
	if reqBody.Email != "" {
		if !emailRegex.MatchString(reqBody.Email) {
			return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Please enter a valid email address",
			})
		}
		user.Email = reqBody.Email
	}
	if reqBody.Password != "" {
		if utf8.RuneCountInString(reqBody.Password) < 8 {
			return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Passwords must be 8 letters long",
			})
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqBody.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Error hashing password",
			})
		}
		user.Password = string(hashedPassword)
	}
	user.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"name":      user.Name,
		"email":     user.Email,
		"password":  user.Password,
		"updatedAt": user.UpdatedAt,
	}}
	if _, err := userCollection.UpdateOne(ctx, bson.M{"_id": user.Id}, update); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error updating profile",
		})
	}

	token, err := auth.GenerateToken(user, configs.Load().JWTSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error generating token",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Profile updated",
		Result: &fiber.Map{
			"id":      user.Id.Hex(),
			"name":    user.Name,
			"email":   user.Email,
			"isAdmin": user.IsAdmin,
			"token":   token,
		},
	})
}

// ForgotPassword issues a 3-hour reset token, stores it on the user so it
// is single-use, and mails the reset link. The mail send is best-effort.
func ForgotPassword(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var reqBody struct {
		Email string `json:"email"`
	}

	if err := c.BodyParser(&reqBody); err != nil || reqBody.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Email is required",
		})
	}

	var user models.User
	if err := userCollection.FindOne(ctx, bson.M{"email": reqBody.Email}).Decode(&user); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "User not found",
		})
	}

	token, err := auth.GenerateResetToken(user.Id, configs.Load().JWTSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error generating reset token",
		})
	}

	update := bson.M{"$set": bson.M{
		"resetToken":        token,
		"resetTokenExpires": time.Now().Add(auth.ResetTTL),
	}}
	if _, err := userCollection.UpdateOne(ctx, bson.M{"_id": user.Id}, update); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error storing reset token",
		})
	}

	slog.Info("password reset requested", "user", user.Id.Hex())
	go mailer.SendPasswordReset(user, token)

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Reset link sent to your email",
	})
}

// ResetPassword consumes a reset token. The token must verify, match the
// one stored on the user, and not be past its stored expiry; it is
// cleared on success so it cannot be replayed.
func ResetPassword(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var reqBody struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&reqBody); err != nil || reqBody.Token == "" || reqBody.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Token and password required",
		})
	}

	if utf8.RuneCountInString(reqBody.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Passwords must be 8 letters long",
		})
	}

	userID, err := auth.VerifyResetToken(reqBody.Token, configs.Load().JWTSecret)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(responses.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid or expired token",
		})
	}

	var user models.User
	filter := bson.M{
		"_id":               userID,
		"resetToken":        reqBody.Token,
		"resetTokenExpires": bson.M{"$gt": time.Now()},
	}
	if err := userCollection.FindOne(ctx, filter).Decode(&user); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "User not found or token expired",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqBody.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error hashing password",
		})
	}

	update := bson.M{
		"$set":   bson.M{"password": string(hashedPassword), "updatedAt": time.Now()},
		"$unset": bson.M{"resetToken": "", "resetTokenExpires": ""},
	}
	if _, err := userCollection.UpdateOne(ctx, bson.M{"_id": user.Id}, update); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error resetting password",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Password reset successful. Please sign in",
	})
}

func GetAllUsers(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	cursor, err := userCollection.Find(ctx, bson.M{})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch users",
		})
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to decode users",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Users fetched successfully",
		Result:  &fiber.Map{"users": users},
	})
}

func GetUserByID(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid user ID format",
		})
	}

	var user models.User
	if err := userCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "User Not Found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "User fetched successfully",
		Result:  &fiber.Map{"user": user},
	})
}

// UpdateUser is the admin edit: name, email and the admin flag.
func UpdateUser(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid user ID format",
		})
	}

	var reqBody struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		IsAdmin bool   `json:"isAdmin"`
	}
	if err := c.BodyParser(&reqBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request format",
		})
	}

	var user models.User
	if err := userCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "User Not Found",
		})
	}

	if reqBody.Name != "" {
		user.Name = reqBody.Name
	}
	if reqBody.Email != "" {
		user.Email = reqBody.Email
	}
	user.IsAdmin = reqBody.IsAdmin
	user.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"name":      user.Name,
		"email":     user.Email,
		"isAdmin":   user.IsAdmin,
		"updatedAt": user.UpdatedAt,
	}}
	if _, err := userCollection.UpdateOne(ctx, bson.M{"_id": user.Id}, update); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error updating user",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "User updated",
		Result:  &fiber.Map{"user": user},
	})
}

func DeleteUser(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	userID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid user ID format",
		})
	}

	var user models.User
	if err := userCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(responses.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "User Not Found",
		})
	}

	if user.Email == protectedAdminEmail {
		return c.Status(fiber.StatusBadRequest).JSON(responses.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Cannot delete admin user",
		})
	}

	if _, err := userCollection.DeleteOne(ctx, bson.M{"_id": user.Id}); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(responses.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error deleting user",
		})
	}

	return c.Status(fiber.StatusOK).JSON(responses.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "User deleted",
	})
}
