package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"commons/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func userClaims(userID uint, exp time.Duration) jwt.MapClaims {
	return jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"exp": time.Now().Add(exp).Unix(),
	}
}

func TestAuthRequired(t *testing.T) {
	InitMiddleware(&config.Config{JWTSecret: testSecret})

	app := fiber.New()
	app.Get("/test", AuthRequired, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userID":      c.Locals("userID"),
			"isModerator": c.Locals("isModerator"),
		})
	})

	modClaims := userClaims(7, time.Hour)
	modClaims[ModeratorClaim] = true

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedUserID uint
		expectedMod    bool
	}{
		{"happy path", "Bearer " + signToken(t, userClaims(123, time.Hour), testSecret), http.StatusOK, 123, false},
		{"moderator claim", "Bearer " + signToken(t, modClaims, testSecret), http.StatusOK, 7, true},
		{"missing header", "", http.StatusUnauthorized, 0, false},
		{"invalid format", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, 0, false},
		{"malformed token", "Bearer malformed.token.here", http.StatusUnauthorized, 0, false},
		{"expired token", "Bearer " + signToken(t, userClaims(123, -time.Hour), testSecret), http.StatusUnauthorized, 0, false},
		{"wrong secret", "Bearer " + signToken(t, userClaims(123, time.Hour), "another-secret"), http.StatusUnauthorized, 0, false},
		{"zero subject", "Bearer " + signToken(t, userClaims(0, time.Hour), testSecret), http.StatusUnauthorized, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.expectedStatus != http.StatusOK {
				return
			}
			var body struct {
				UserID      uint `json:"userID"`
				IsModerator bool `json:"isModerator"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.expectedUserID, body.UserID)
			assert.Equal(t, tt.expectedMod, body.IsModerator)
		})
	}
}

func TestModeratorRequired(t *testing.T) {
	InitMiddleware(&config.Config{JWTSecret: testSecret})

	app := fiber.New()
	app.Get("/mod", AuthRequired, ModeratorRequired, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	modClaims := userClaims(1, time.Hour)
	modClaims[ModeratorClaim] = true

	for token, status := range map[string]int{
		signToken(t, userClaims(1, time.Hour), testSecret): http.StatusForbidden,
		signToken(t, modClaims, testSecret):                http.StatusNoContent,
	} {
		req := httptest.NewRequest(http.MethodGet, "/mod", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, status, resp.StatusCode)
	}
}

func TestOptionalAuth(t *testing.T) {
	InitMiddleware(&config.Config{JWTSecret: testSecret})

	app := fiber.New()
	app.Get("/maybe", OptionalAuth, func(c *fiber.Ctx) error {
		uid, _ := c.Locals("userID").(uint)
		ctxUID, _ := c.UserContext().Value(UserIDKey).(uint)
		return c.JSON(fiber.Map{"userID": uid, "ctxUserID": ctxUID})
	})

	tests := []struct {
		name       string
		authHeader string
		expected   uint
	}{
		{"anonymous", "", 0},
		{"valid token", "Bearer " + signToken(t, userClaims(42, time.Hour), testSecret), 42},
		{"expired token", "Bearer " + signToken(t, userClaims(42, -time.Hour), testSecret), 0},
		{"wrong scheme", "Basic dXNlcjpwYXNz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/maybe", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			require.Equal(t, http.StatusOK, resp.StatusCode)
			var body struct {
				UserID    uint `json:"userID"`
				CtxUserID uint `json:"ctxUserID"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.expected, body.UserID)
			assert.Equal(t, tt.expected, body.CtxUserID)
		})
	}
}

func TestMetricsMiddleware(t *testing.T) {
	p := InitMetrics("commons-test")
	assert.Same(t, p, InitMetrics("other-name"))

	app := fiber.New()
	app.Use(MetricsMiddleware(p))
	p.RegisterAt(app, "/metrics")
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
