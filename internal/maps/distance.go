// Package maps resolves driving distances between pickup and delivery
// addresses through the Google Maps Directions API.
package maps

import (
	"context"
	"fmt"
	"math"

	"googlemaps.github.io/maps"
)

type DistanceService struct {
	client  *maps.Client
	region  string
	retries int
}

// NewDistanceService creates a maps-backed distance resolver. Region biases
// geocoding towards the operating country.
func NewDistanceService(apiKey, region string, retries int) (*DistanceService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	if retries < 0 {
		retries = 0
	}
	return &DistanceService{client: client, region: region, retries: retries}, nil
}

// DrivingDistanceKm returns the driving distance between two addresses.
// This is a read, so it is retried a small bounded number of times; write
// operations elsewhere in the service are never auto-retried.
func (s *DistanceService) DrivingDistanceKm(ctx context.Context, origin, destination string) (float64, error) {
	var lastErr error
	for attempt := 0; attempt <= s.retries; attempt++ {
		km, err := s.drivingDistanceKm(ctx, origin, destination)
		if err == nil {
			return km, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return 0, lastErr
}

func (s *DistanceService) drivingDistanceKm(ctx context.Context, origin, destination string) (float64, error) {
	r := &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        maps.TravelModeDriving,
		Region:      s.region,
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return 0, fmt.Errorf("maps api error: %w", err)
	}

	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, fmt.Errorf("no route found between %q and %q", origin, destination)
	}

	meters := 0
	for _, leg := range routes[0].Legs {
		meters += leg.Distance.Meters
	}
	return float64(meters) / 1000.0, nil
}

const earthRadiusKm = 6371.0

// HaversineKm is the great-circle distance between two coordinate pairs in
// decimal degrees. Used as a rough fallback when no route is available.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLng := degreesToRadians(lng2 - lng1)

	rLat1 := degreesToRadians(lat1)
	rLat2 := degreesToRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
