package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Bibekgupta777/Medicure-Pharmacy/models"
)

const testSecret = "test-secret"

func TestSessionTokenRoundTrip(t *testing.T) {
	user := models.User{
		Id:      primitive.NewObjectID(),
		Name:    "Asha",
		Email:   "asha@example.com",
		IsAdmin: true,
	}

	token, err := GenerateToken(user, testSecret)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	principal, err := VerifyToken(token, testSecret)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if principal.ID != user.Id || principal.Name != user.Name ||
		principal.Email != user.Email || !principal.IsAdmin {
		t.Errorf("principal %+v does not match user", principal)
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(models.User{Id: primitive.NewObjectID()}, testSecret)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := VerifyToken(token, "other-secret"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   primitive.NewObjectID().Hex(),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := VerifyToken(token, testSecret); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("got %v, want ErrExpiredToken", err)
	}
}

func TestVerifyTokenGarbage(t *testing.T) {
	if _, err := VerifyToken("not-a-token", testSecret); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestResetTokenRoundTrip(t *testing.T) {
	userID := primitive.NewObjectID()

	token, err := GenerateResetToken(userID, testSecret)
	if err != nil {
		t.Fatalf("GenerateResetToken: %v", err)
	}

	got, err := VerifyResetToken(token, testSecret)
	if err != nil {
		t.Fatalf("VerifyResetToken: %v", err)
	}
	if got != userID {
		t.Errorf("got user %s, want %s", got.Hex(), userID.Hex())
	}
}

func TestResetTokenNotValidAsSessionSubjectOnly(t *testing.T) {
	// A reset token carries no name/email/isAdmin; verifying it as a
	// session token must not yield an admin principal.
	token, err := GenerateResetToken(primitive.NewObjectID(), testSecret)
	if err != nil {
		t.Fatalf("GenerateResetToken: %v", err)
	}
	principal, err := VerifyToken(token, testSecret)
	if err != nil {
		return
	}
	if principal.IsAdmin {
		t.Error("reset token verified as admin session")
	}
}
