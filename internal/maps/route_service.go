// README: Google Maps Directions client used for driving distances between pickup and dropoff.
package maps

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"

	"tvirti/internal/types"
)

var ErrNoRoute = errors.New("no route found")

// RouteService handles interactions with the Google Maps Directions API.
type RouteService struct {
	client *maps.Client
}

// NewRouteService creates a new RouteService with the given API Key.
func NewRouteService(apiKey string) (*RouteService, error) {
	client, err := newClient(apiKey)
	if err != nil {
		return nil, err
	}
	return &RouteService{client: client}, nil
}

func newClient(apiKey string) (*maps.Client, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return client, nil
}

func latLng(p types.Point) string {
	return fmt.Sprintf("%f,%f", p.Lat, p.Lng)
}

func (s *RouteService) firstLeg(ctx context.Context, from, to types.Point) (*maps.Leg, error) {
	r := &maps.DirectionsRequest{
		Origin:      latLng(from),
		Destination: latLng(to),
		Mode:        maps.TravelModeDriving,
		Region:      "ge",
	}
	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return nil, ErrNoRoute
	}
	return routes[0].Legs[0], nil
}

// DrivingDistanceKm returns the length of the first suggested driving route.
func (s *RouteService) DrivingDistanceKm(ctx context.Context, from, to types.Point) (float64, error) {
	leg, err := s.firstLeg(ctx, from, to)
	if err != nil {
		return 0, err
	}
	return float64(leg.Distance.Meters) / 1000, nil
}

