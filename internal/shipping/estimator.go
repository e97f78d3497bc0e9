// Package shipping estimates delivery costs against the routing provider.
package shipping

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Estimator computes the shipping cost for a destination address.
type Estimator interface {
	Estimate(ctx context.Context, street, city, zip string) float64
}

// Config holds the routing provider settings.
type Config struct {
	APIKey          string
	BaseURL         string
	WarehouseCoords string // "lon,lat" of the dispatch warehouse
	RatePerKm       float64
	FallbackCost    float64
	CacheTTL        time.Duration
}

// DefaultBaseURL is the public OpenRouteService endpoint.
const DefaultBaseURL = "https://api.openrouteservice.org"

// Service quotes shipping by geocoding the destination and pricing the
// driving distance from the warehouse. Quotes are cached in Redis per
// normalized address and concurrent lookups for the same address are
// collapsed. Any provider failure degrades to the fixed fallback cost; an
// estimate is never an error for the caller.
type Service struct {
	cfg    Config
	client *http.Client
	cache  *redis.Client
	group  singleflight.Group
	logger *slog.Logger
}

var _ Estimator = (*Service)(nil)

// NewService constructs an estimator. cache may be nil to disable caching.
func NewService(cfg Config, cache *redis.Client, logger *slog.Logger) *Service {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	return &Service{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		cache:  cache,
		logger: logger,
	}
}

// Estimate returns the shipping cost for the address.
func (s *Service) Estimate(ctx context.Context, street, city, zip string) float64 {
	key := quoteKey(street, city, zip)

	if s.cache != nil {
		if cost, err := s.cache.Get(ctx, key).Float64(); err == nil {
			return cost
		}
	}

	cost, _, _ := s.group.Do(key, func() (any, error) {
		cost, err := s.quote(ctx, street, city, zip)
		if err != nil {
			s.logger.Warn("shipping estimate fallback", slog.Any("error", err))
			return s.cfg.FallbackCost, nil
		}
		if s.cache != nil {
			if err := s.cache.Set(ctx, key, cost, s.cfg.CacheTTL).Err(); err != nil {
				s.logger.Warn("shipping quote cache write", slog.Any("error", err))
			}
		}
		return cost, nil
	})
	return cost.(float64)
}

func (s *Service) quote(ctx context.Context, street, city, zip string) (float64, error) {
	destination, err := s.geocode(ctx, street+" "+city+" "+zip)
	if err != nil {
		return 0, err
	}

	distanceKm, err := s.drivingDistance(ctx, destination)
	if err != nil {
		return 0, err
	}
	return distanceKm * s.cfg.RatePerKm, nil
}

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

func (s *Service) geocode(ctx context.Context, text string) (string, error) {
	query := url.Values{}
	query.Set("api_key", s.cfg.APIKey)
	query.Set("text", text)

	var decoded geocodeResponse
	if err := s.getJSON(ctx, s.cfg.BaseURL+"/geocode/search?"+query.Encode(), &decoded); err != nil {
		return "", fmt.Errorf("shipping: geocode: %w", err)
	}
	if len(decoded.Features) == 0 || len(decoded.Features[0].Geometry.Coordinates) < 2 {
		return "", fmt.Errorf("shipping: geocode: no match for %q", text)
	}
	coords := decoded.Features[0].Geometry.Coordinates
	return fmt.Sprintf("%v,%v", coords[0], coords[1]), nil
}

type routeResponse struct {
	Features []struct {
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"`
			} `json:"summary"`
		} `json:"properties"`
	} `json:"features"`
}

func (s *Service) drivingDistance(ctx context.Context, destination string) (float64, error) {
	query := url.Values{}
	query.Set("api_key", s.cfg.APIKey)
	query.Set("start", s.cfg.WarehouseCoords)
	query.Set("end", destination)

	var decoded routeResponse
	if err := s.getJSON(ctx, s.cfg.BaseURL+"/v2/directions/driving-car?"+query.Encode(), &decoded); err != nil {
		return 0, fmt.Errorf("shipping: route: %w", err)
	}
	if len(decoded.Features) == 0 {
		return 0, fmt.Errorf("shipping: route: empty response")
	}
	return decoded.Features[0].Properties.Summary.Distance / 1000, nil
}

func (s *Service) getJSON(ctx context.Context, rawURL string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(target)
}

func quoteKey(street, city, zip string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(street+" "+city+" "+zip), " "))
	return "shipping:quote:" + normalized
}
