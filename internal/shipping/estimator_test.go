package shipping

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeProvider mimics the geocode and directions endpoints and counts
// directions calls.
func fakeProvider(t *testing.T, distanceMeters float64, routeCalls *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/geocode/search"):
			w.Write([]byte(`{"features":[{"geometry":{"coordinates":[9.21,45.47]}}]}`))
		case strings.HasPrefix(r.URL.Path, "/v2/directions/driving-car"):
			if routeCalls != nil {
				routeCalls.Add(1)
			}
			distance := strconv.FormatFloat(distanceMeters, 'f', -1, 64)
			w.Write([]byte(`{"features":[{"properties":{"summary":{"distance":` + distance + `}}}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestEstimatePricesDrivingDistance(t *testing.T) {
	server := fakeProvider(t, 12000, nil)
	defer server.Close()

	service := NewService(Config{
		BaseURL:         server.URL,
		WarehouseCoords: "9.19,45.46",
		RatePerKm:       0.5,
		FallbackCost:    10,
	}, nil, discardLogger())

	cost := service.Estimate(context.Background(), "Via Roma 1", "Milano", "20100")
	assert.InDelta(t, 6.0, cost, 1e-9) // 12 km at 0.5 per km
}

func TestEstimateFallsBackOnProviderFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	service := NewService(Config{
		BaseURL:         server.URL,
		WarehouseCoords: "9.19,45.46",
		RatePerKm:       0.5,
		FallbackCost:    10,
	}, nil, discardLogger())

	cost := service.Estimate(context.Background(), "Via Roma 1", "Milano", "20100")
	assert.Equal(t, 10.0, cost)
}

func TestEstimateFallsBackOnNoGeocodeMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"features":[]}`))
	}))
	defer server.Close()

	service := NewService(Config{
		BaseURL:      server.URL,
		FallbackCost: 7.5,
	}, nil, discardLogger())

	cost := service.Estimate(context.Background(), "Nowhere 0", "Atlantis", "00000")
	assert.Equal(t, 7.5, cost)
}

func TestEstimateCachesSuccessfulQuotes(t *testing.T) {
	var routeCalls atomic.Int64
	server := fakeProvider(t, 12000, &routeCalls)
	defer server.Close()

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	service := NewService(Config{
		BaseURL:         server.URL,
		WarehouseCoords: "9.19,45.46",
		RatePerKm:       0.5,
		FallbackCost:    10,
		CacheTTL:        time.Hour,
	}, cache, discardLogger())

	first := service.Estimate(context.Background(), "Via Roma 1", "Milano", "20100")
	second := service.Estimate(context.Background(), "via roma 1", " Milano ", "20100")

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), routeCalls.Load(), "second lookup must be served from cache")
}

func TestEstimateDoesNotCacheFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	service := NewService(Config{
		BaseURL:      server.URL,
		FallbackCost: 10,
		CacheTTL:     time.Hour,
	}, cache, discardLogger())

	cost := service.Estimate(context.Background(), "Via Roma 1", "Milano", "20100")
	require.Equal(t, 10.0, cost)
	assert.Empty(t, mr.Keys(), "fallback quotes must not be cached")
}
