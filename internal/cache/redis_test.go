package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisCache instance
func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cache := NewRedisCache(client, 15*time.Minute, nil)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return cache, mr, cleanup
}

func testReceipt(id string) *domain.Receipt {
	return &domain.Receipt{
		ID:            id,
		Subtotal:      decimal.RequireFromString("1060.00"),
		DiscountTotal: decimal.RequireFromString("120.00"),
		Discounts:     []string{"10% Off on Laptop applied", "Buy 1 Get 1 Free on T-Shirt applied"},
		TotalUSD:      decimal.RequireFromString("940.00"),
		Lines: []domain.ReceiptLine{
			{ProductID: "P001", Name: "Laptop", Quantity: 1, UnitPrice: decimal.NewFromInt(1000), LineTotal: decimal.NewFromInt(1000)},
		},
		Conversion: &domain.Conversion{
			Currency: "EUR",
			Rate:     decimal.RequireFromString("0.85"),
			Total:    decimal.RequireFromString("799.00"),
		},
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestGet_Success(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	receipt := testReceipt("r-1")
	data, err := json.Marshal(receipt)
	require.NoError(t, err)
	require.NoError(t, mr.Set(cacheKey("r-1"), string(data)))

	result, err := cache.Get(context.Background(), "r-1")
	require.NoError(t, err)
	assert.Equal(t, "r-1", result.ID)
	assert.True(t, receipt.TotalUSD.Equal(result.TotalUSD))
	assert.Equal(t, receipt.Discounts, result.Discounts)
	require.NotNil(t, result.Conversion)
	assert.Equal(t, "799.00", result.Conversion.Total.StringFixed(2))
}

func TestGet_CacheMiss(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	result, err := cache.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, result)
}

func TestGet_InvalidJSON(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, mr.Set(cacheKey("bad"), `{"id":`))

	_, err := cache.Get(context.Background(), "bad")
	require.ErrorContains(t, err, "unmarshal receipt failed")
}

func TestSet_WithTTL(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, cache.Set(context.Background(), testReceipt("r-2")))

	stored, err := mr.Get(cacheKey("r-2"))
	require.NoError(t, err)
	assert.Contains(t, stored, `"id":"r-2"`)

	ttl := mr.TTL(cacheKey("r-2"))
	assert.True(t, ttl >= 15*time.Minute, "TTL should be at least base TTL")
	assert.True(t, ttl < 20*time.Minute, "TTL should be base + max jitter")
}

func TestDelete(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, testReceipt("r-3")))
	assert.True(t, mr.Exists(cacheKey("r-3")))

	require.NoError(t, cache.Delete(ctx, "r-3"))
	assert.False(t, mr.Exists(cacheKey("r-3")))

	// Deleting non-existent key should not error
	assert.NoError(t, cache.Delete(ctx, "nonexistent"))
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()
	ctx := context.Background()

	mr.SetError("ERR server unavailable")

	for i := 0; i < breakerFailures; i++ {
		_, err := cache.Get(ctx, "r-4")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnavailable)
	}

	_, err := cache.Get(ctx, "r-4")
	assert.ErrorIs(t, err, ErrUnavailable)

	err = cache.Set(ctx, testReceipt("r-4"))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestBreaker_MissesDoNotTrip(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()
	ctx := context.Background()

	for i := 0; i < breakerFailures*2; i++ {
		_, err := cache.Get(ctx, "missing")
		require.ErrorIs(t, err, ErrCacheMiss)
	}
}

func TestCacheKey_Format(t *testing.T) {
	assert.Equal(t, "receipt:test123", cacheKey("test123"))
}
