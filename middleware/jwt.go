package middleware

import (
	"fmt"
	"strings"
	"time"

	"lms/config"
	"lms/database"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// GenerateJWT generates a login JWT token for the user
func GenerateJWT(userID uint, name, role, email string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"name":   name,
		"role":   role,
		"email":  email,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(30 * 24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// resolveUser parses the bearer token and loads the matching live user,
// with the password hash stripped.
func resolveUser(c *fiber.Ctx) (*models.User, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, fmt.Errorf("missing Authorization header")
	}

	// The token should be prefixed with "Bearer "
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, fmt.Errorf("invalid Authorization header format")
	}

	tokenString := authHeader[len("Bearer "):]

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["userId"] == nil {
		return nil, fmt.Errorf("invalid token payload")
	}

	// JWT number claims decode as float64
	userID := uint(claims["userId"].(float64))

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return nil, fmt.Errorf("user not found")
	}
	user.Password = ""

	return &user, nil
}

// JWTMiddleware rejects the request unless a valid bearer token resolves to a
// live user. The user is stored in the request context for handlers.
func JWTMiddleware(c *fiber.Ctx) error {
	user, err := resolveUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": "Not authorized: " + err.Error(),
		})
	}

	c.Locals("user", user)
	c.Locals("userId", user.ID)

	return c.Next()
}

// OptionalJWTMiddleware performs the same resolution as JWTMiddleware but
// proceeds anonymously on any failure. Used by endpoints that personalize
// output for logged-in users without requiring login.
func OptionalJWTMiddleware(c *fiber.Ctx) error {
	if user, err := resolveUser(c); err == nil {
		c.Locals("user", user)
		c.Locals("userId", user.ID)
	}
	return c.Next()
}

// GenerateEnrollmentToken signs a short-lived token binding a course and user
// across the external payment redirect.
func GenerateEnrollmentToken(courseID, userID uint) (string, error) {
	claims := jwt.MapClaims{
		"courseId": courseID,
		"userId":   userID,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(1 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTKey))
}

// ParseEnrollmentToken verifies a checkout continuation token and returns the
// bound course and user identifiers.
func ParseEnrollmentToken(tokenString string) (courseID uint, userID uint, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return 0, 0, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["courseId"] == nil || claims["userId"] == nil {
		return 0, 0, fmt.Errorf("invalid token payload")
	}

	return uint(claims["courseId"].(float64)), uint(claims["userId"].(float64)), nil
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}
