// README: Distance resolution for quotes and orders (client value, driving route, straight line).
package location

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"tvirti/internal/types"
)

type RouteEstimator interface {
	DrivingDistanceKm(ctx context.Context, from, to types.Point) (float64, error)
}

type Geocoder interface {
	Geocode(ctx context.Context, address string) (types.Location, error)
}

type Source string

const (
	SourceClient       Source = "client"
	SourceRoute        Source = "route"
	SourceStraightLine Source = "straight_line"
)

type Distance struct {
	Km     float64 `json:"km"`
	Source Source  `json:"source"`
}

var (
	ErrMissingPoints   = errors.New("pickup and dropoff coordinates are required")
	ErrInvalidDistance = errors.New("reported distance must be a non-negative number")
)

type Service struct {
	routes   RouteEstimator
	geocoder Geocoder
}

// NewService accepts nil dependencies: without an estimator only straight-line distances
// are used, without a geocoder every location must carry coordinates.
func NewService(routes RouteEstimator, geocoder Geocoder) *Service {
	return &Service{routes: routes, geocoder: geocoder}
}

// Locate fills in the coordinates of a location entered as text only.
func (s *Service) Locate(ctx context.Context, loc types.Location) (types.Location, error) {
	if !loc.Point.IsZero() {
		return loc, nil
	}
	if s.geocoder == nil || loc.Address == "" {
		return loc, ErrMissingPoints
	}
	found, err := s.geocoder.Geocode(ctx, loc.Address)
	if err != nil {
		return loc, fmt.Errorf("locate %q: %w", loc.Address, err)
	}
	loc.Point = found.Point
	return loc, nil
}

// Resolve picks the distance between from and to. A distance reported by the booking
// wizard (measured on its map) wins; then the driving route; then the great circle.
func (s *Service) Resolve(ctx context.Context, from, to types.Point, reported *float64) (Distance, error) {
	if reported != nil {
		km := *reported
		if km < 0 || math.IsNaN(km) || math.IsInf(km, 0) {
			return Distance{}, ErrInvalidDistance
		}
		return Distance{Km: km, Source: SourceClient}, nil
	}
	if from.IsZero() || to.IsZero() {
		return Distance{}, ErrMissingPoints
	}
	if s.routes != nil {
		km, err := s.routes.DrivingDistanceKm(ctx, from, to)
		if err == nil {
			return Distance{Km: km, Source: SourceRoute}, nil
		}
		log.Printf("[location] route distance failed, using straight line: %v", err)
	}
	return Distance{Km: HaversineKm(from, to), Source: SourceStraightLine}, nil
}
