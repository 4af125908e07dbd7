// README: Pure geographic helpers (great-circle distance, distance sort).
package location

import (
	"math"
	"sort"

	"tvirti/internal/types"
)

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance in kilometres between two points.
func HaversineKm(a, b types.Point) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// SortByDistance orders items closest first, keeping the input order for ties.
func SortByDistance[T any](items []T, dist func(T) float64) {
	sort.SliceStable(items, func(i, j int) bool {
		return dist(items[i]) < dist(items[j])
	})
}
