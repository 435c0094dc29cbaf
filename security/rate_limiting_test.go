package security

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/labstack/echo/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invokeLimited(t *testing.T, limiter *RateLimiter) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()

	handler := limiter.PurchaseRateLimit()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/tickets/purchase", nil)
	req.RemoteAddr = "198.51.100.7:4567"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler(c))
	return rec
}

func TestPurchaseRateLimit_NilLimiterPassesThrough(t *testing.T) {
	var limiter *RateLimiter
	rec := invokeLimited(t, limiter)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPurchaseRateLimit_UnderLimit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 10, time.Minute)

	key := "ratelimit:purchase:198.51.100.7"
	mock.ExpectIncr(key).SetVal(1)
	mock.ExpectExpire(key, time.Minute).SetVal(true)

	rec := invokeLimited(t, limiter)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseRateLimit_OverLimit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 10, time.Minute)

	mock.ExpectIncr("ratelimit:purchase:198.51.100.7").SetVal(11)

	rec := invokeLimited(t, limiter)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "rate_limited")
}

func TestPurchaseRateLimit_RedisErrorPassesThrough(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 10, time.Minute)

	mock.ExpectIncr("ratelimit:purchase:198.51.100.7").SetErr(errors.New("connection refused"))

	rec := invokeLimited(t, limiter)
	assert.Equal(t, http.StatusOK, rec.Code)
}
