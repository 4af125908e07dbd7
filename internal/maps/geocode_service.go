// README: Google Maps Geocoding client used to place addresses typed without a map pin.
package maps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"tvirti/internal/types"
)

var ErrAddressNotFound = errors.New("address not found")

type GeocodeService struct {
	client *maps.Client
}

func NewGeocodeService(apiKey string) (*GeocodeService, error) {
	client, err := newClient(apiKey)
	if err != nil {
		return nil, err
	}
	return &GeocodeService{client: client}, nil
}

// Geocode resolves a free-form address, biased to Georgia, to its first match.
func (s *GeocodeService) Geocode(ctx context.Context, address string) (types.Location, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return types.Location{}, ErrAddressNotFound
	}
	results, err := s.client.Geocode(ctx, &maps.GeocodingRequest{
		Address:  address,
		Region:   "ge",
		Language: "ka",
	})
	if err != nil {
		return types.Location{}, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return types.Location{}, ErrAddressNotFound
	}
	r := results[0]
	return types.Location{
		Address: r.FormattedAddress,
		Point:   types.Point{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
	}, nil
}
