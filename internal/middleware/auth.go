// Package middleware provides request context, identity and rate limiting
// middleware for the HTTP surface.
package middleware

import (
	"context"
	"strconv"
	"strings"
	"sync/atomic"

	"commons/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var current atomic.Pointer[config.Config]

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	current.Store(c)
}

// ModeratorClaim marks a token holder as a platform moderator.
const ModeratorClaim = "mod"

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})
}

func parseClaims(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		cfg := current.Load()
		if cfg == nil {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Authentication is not configured")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}
	return claims, nil
}

// AuthRequired enforces a bearer JWT and stores the subject as c.Locals("userID")
// and the moderator claim as c.Locals("isModerator").
func AuthRequired(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return unauthorized(c, "Authorization header required")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return unauthorized(c, "Invalid authorization header format")
	}

	claims, err := parseClaims(parts[1])
	if err != nil {
		return unauthorized(c, err.Error())
	}

	// Subject claim per RFC 7519.
	subStr, ok := claims["sub"].(string)
	if !ok {
		return unauthorized(c, "Invalid token structure - missing subject")
	}
	userIDVal, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil || userIDVal == 0 {
		return unauthorized(c, "Invalid user ID in token")
	}

	isModerator, _ := claims[ModeratorClaim].(bool)

	c.Locals("userID", uint(userIDVal))
	c.Locals("isModerator", isModerator)
	c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, uint(userIDVal)))

	return c.Next()
}

// OptionalAuth identifies the caller when a valid bearer token is present and
// otherwise continues anonymously.
func OptionalAuth(c *fiber.Ctx) error {
	scheme, token, ok := strings.Cut(c.Get("Authorization"), " ")
	if !ok || scheme != "Bearer" {
		return c.Next()
	}
	claims, err := parseClaims(token)
	if err != nil {
		return c.Next()
	}
	sub, _ := claims["sub"].(string)
	if id, err := strconv.ParseUint(sub, 10, 32); err == nil && id != 0 {
		c.Locals("userID", uint(id))
		c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, uint(id)))
	}
	return c.Next()
}

// ModeratorRequired must run after AuthRequired.
func ModeratorRequired(c *fiber.Ctx) error {
	if isModerator, _ := c.Locals("isModerator").(bool); !isModerator {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "moderator access required",
		})
	}
	return c.Next()
}
