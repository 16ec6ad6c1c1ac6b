package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-seat-booking/internal/config"
	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/pkg/clock"
	"github.com/iliyamo/cinema-seat-booking/internal/utils"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func okHandler(c echo.Context) error { return c.String(http.StatusOK, "ok") }

func serve(t *testing.T, mw echo.MiddlewareFunc, req *http.Request, h echo.HandlerFunc) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/screenings/:id/bookings")
	require.NoError(t, mw(h)(c))
	return rec, c
}

func bearer(t *testing.T, secret string) string {
	t.Helper()
	tok, err := utils.NewAccessToken(secret, 42, "alice", model.RoleCustomer, 5, time.Now())
	require.NoError(t, err)
	return "Bearer " + tok.Token
}

func TestJWTAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec, _ := serve(t, JWTAuth("s3cret"), req, okHandler)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", bearer(t, "other"))
	rec, _ = serve(t, JWTAuth("s3cret"), req, okHandler)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", bearer(t, "s3cret"))
	rec, c := serve(t, JWTAuth("s3cret"), req, okHandler)
	assert.Equal(t, http.StatusOK, rec.Code)
	id, ok := UserID(c)
	assert.True(t, ok)
	assert.Equal(t, uint64(42), id)
	assert.Equal(t, "alice", Username(c))
}

func TestOptionalJWT(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec, c := serve(t, OptionalJWT("s3cret"), req, okHandler)
	assert.Equal(t, http.StatusOK, rec.Code)
	_, ok := UserID(c)
	assert.False(t, ok)

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec, _ = serve(t, OptionalJWT("s3cret"), req, okHandler)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", bearer(t, "s3cret"))
	rec, c = serve(t, OptionalJWT("s3cret"), req, okHandler)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-42", purchaserKey(c))
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.Set(CtxRole, "admin")
	require.NoError(t, RequireRole(model.RoleCustomer)(okHandler)(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.Set(CtxRole, model.RoleCustomer)
	require.NoError(t, RequireRole(model.RoleCustomer)(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBuildRateKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/screenings/7/bookings", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	e := echo.New()
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/screenings/:id/bookings")

	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_purchaser_route"}
	assert.Equal(t, "rl:ip:10.0.0.1:p:guest:route:POST /v1/screenings/:id/bookings", buildRateKey(cfg, c))

	c.Set(CtxUserID, uint64(3))
	cfg.KeyStrategy = "purchaser"
	assert.Equal(t, "rl:p:user-3", buildRateKey(cfg, c))
}

func rateCfg() config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled: true, Capacity: 2, RefillTokens: 1,
		RefillInterval: 2 * time.Second, TTL: time.Minute,
		KeyStrategy: "ip", Prefix: "rl",
	}
}

func TestTokenBucketBlocks(t *testing.T) {
	db, mock := redismock.NewClientMock()
	clk := clock.NewMockClock(time.UnixMilli(1_700_000_000_000))
	cfg := rateCfg()

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	key := "rl:ip:10.0.0.1"
	mock.ExpectEvalSha(tokenBucketScript.Hash(), []string{key}, rateArgs(cfg, clk.Now().UnixMilli())...).
		SetVal([]interface{}{int64(0), int64(0), int64(1500)})

	rec, _ := serve(t, NewTokenBucket(cfg, db, clk, quiet), req, okHandler)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenBucketAllowsAndFailsOpen(t *testing.T) {
	db, mock := redismock.NewClientMock()
	clk := clock.NewMockClock(time.UnixMilli(1_700_000_000_000))
	cfg := rateCfg()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"

	mock.ExpectEvalSha(tokenBucketScript.Hash(), []string{"rl:ip:10.0.0.1"}, rateArgs(cfg, clk.Now().UnixMilli())...).
		SetVal([]interface{}{int64(1), int64(1), int64(0)})
	rec, _ := serve(t, NewTokenBucket(cfg, db, clk, quiet), req, okHandler)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))

	// no expectation left: the mock errors and the request still passes
	req = httptest.NewRequest(http.MethodPost, "/", nil)
	rec, _ = serve(t, NewTokenBucket(cfg, db, clk, quiet), req, okHandler)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = serve(t, NewTokenBucket(cfg, nil, clk, quiet), httptest.NewRequest(http.MethodPost, "/", nil), okHandler)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"items":[]}`))
	require.NoError(t, err)

	status, got, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, hdr, got)
	assert.Equal(t, `{"items":[]}`, string(body))

	_, _, _, ok = decodePayload(bs[:5])
	assert.False(t, ok)
}

func TestRedisCacheHit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cfg := config.CacheConfig{Enabled: true, TTL: time.Minute, Prefix: "cache"}
	req := httptest.NewRequest(http.MethodGet, "/v1/movies", nil)

	payload, err := encodePayload(http.StatusOK, http.Header{"Content-Type": {"application/json"}}, []byte(`{"items":["cached"]}`))
	require.NoError(t, err)
	mock.ExpectGet(cacheKey("cache", req)).SetVal(string(payload))

	called := false
	rec, _ := serve(t, NewRedisCache(cfg, db, quiet), req, func(c echo.Context) error {
		called = true
		return c.String(http.StatusOK, "fresh")
	})
	assert.False(t, called)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Equal(t, `{"items":["cached"]}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheMissServesFreshResponse(t *testing.T) {
	db, _ := redismock.NewClientMock()
	cfg := config.CacheConfig{Enabled: true, TTL: time.Minute, Prefix: "cache"}

	rec, _ := serve(t, NewRedisCache(cfg, db, quiet), httptest.NewRequest(http.MethodGet, "/v1/movies", nil), func(c echo.Context) error {
		return c.String(http.StatusOK, "fresh")
	})
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, "fresh", rec.Body.String())

	// non-GET requests bypass the cache entirely
	rec, _ = serve(t, NewRedisCache(cfg, db, quiet), httptest.NewRequest(http.MethodPost, "/v1/movies", nil), okHandler)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestCacheKeyDistinguishesPaths(t *testing.T) {
	a := cacheKey("cache", httptest.NewRequest(http.MethodGet, "/v1/movies/1", nil))
	b := cacheKey("cache", httptest.NewRequest(http.MethodGet, "/v1/movies/2", nil))
	c := cacheKey("cache", httptest.NewRequest(http.MethodGet, "/v1/movies/1?x=1", nil))
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}
