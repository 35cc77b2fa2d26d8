package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futurepulse/backend/internal/models"
	"github.com/futurepulse/backend/internal/realtime"
)

func signToken(t *testing.T, secret string, userID uint, expiresAt time.Time) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		UserID: userID,
		Email:  "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func channelContext(token string) echo.Context {
	e := echo.New()
	target := "/ws/notifications/"
	if token != "" {
		target += "?token=" + url.QueryEscape(token)
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestIdentifyValidToken(t *testing.T) {
	h := NewChannelHandler(realtime.NewRegistry(), nil, "test-secret")
	token := signToken(t, "test-secret", 42, time.Now().Add(time.Hour))

	assert.Equal(t, uint(42), h.identify(channelContext(token)))
}

func TestIdentifyMissingToken(t *testing.T) {
	h := NewChannelHandler(realtime.NewRegistry(), nil, "test-secret")

	assert.Equal(t, uint(0), h.identify(channelContext("")))
}

func TestIdentifyMalformedToken(t *testing.T) {
	h := NewChannelHandler(realtime.NewRegistry(), nil, "test-secret")

	assert.Equal(t, uint(0), h.identify(channelContext("not-a-jwt")))
}

func TestIdentifyWrongSecret(t *testing.T) {
	h := NewChannelHandler(realtime.NewRegistry(), nil, "test-secret")
	token := signToken(t, "other-secret", 42, time.Now().Add(time.Hour))

	assert.Equal(t, uint(0), h.identify(channelContext(token)))
}

func TestIdentifyExpiredToken(t *testing.T) {
	h := NewChannelHandler(realtime.NewRegistry(), nil, "test-secret")
	token := signToken(t, "test-secret", 42, time.Now().Add(-time.Hour))

	assert.Equal(t, uint(0), h.identify(channelContext(token)))
}
