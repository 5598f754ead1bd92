// Package middleware provides authentication, logging, and rate limiting middleware.
package middleware

import (
	"strconv"
	"strings"
	"time"

	"eventify/internal/cache"
	"eventify/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// TokenIssuer and TokenAudience are stamped into every issued token and
	// checked on every request.
	TokenIssuer   = "eventify-api"
	TokenAudience = "eventify-client"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// parseToken validates the raw JWT and returns the user ID, jti claim, and
// expiry.
func parseToken(tokenString string) (uint, string, time.Time, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	},
		jwt.WithIssuer(TokenIssuer),
		jwt.WithAudience(TokenAudience),
	)
	if err != nil || !token.Valid {
		return 0, "", time.Time{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", time.Time{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}

	subStr, ok := claims["sub"].(string)
	if !ok {
		return 0, "", time.Time{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid token subject")
	}
	userIDVal, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return 0, "", time.Time{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID in token")
	}

	jti, _ := claims["jti"].(string)
	var expiry time.Time
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiry = exp.Time
	}
	return uint(userIDVal), jti, expiry, nil
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// AuthRequired is a middleware that enforces authentication for protected routes.
// Tokens whose jti has been revoked (logout) are rejected.
func AuthRequired(c *fiber.Ctx) error {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authorization header required",
		})
	}

	userID, jti, expiry, err := parseToken(tokenString)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if jti != "" && cache.IsTokenRevoked(c.Context(), jti) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Token has been revoked",
		})
	}

	c.Locals("userID", userID)
	c.Locals("jti", jti)
	c.Locals("tokenExp", expiry)

	return c.Next()
}

// OptionalAuth resolves the requesting user when a valid token is present and
// otherwise lets the request through anonymously. Public reads use it so that
// viewer flags and is_owner can be computed.
func OptionalAuth(c *fiber.Ctx) error {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return c.Next()
	}

	userID, jti, _, err := parseToken(tokenString)
	if err != nil || (jti != "" && cache.IsTokenRevoked(c.Context(), jti)) {
		// A bad token on a public route is treated as anonymous, not an error.
		return c.Next()
	}

	c.Locals("userID", userID)
	c.Locals("jti", jti)
	return c.Next()
}
