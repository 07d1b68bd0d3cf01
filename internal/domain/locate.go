package domain

import (
	"context"
	"fmt"
	"log/slog"
)

// Locate fills in coordinates for a record whose source row had none by
// forward-geocoding its municipality. Records that are already located are
// returned unchanged. A nil geocoder, a provider error, or an empty result
// all fail with ErrMissingCoordinates.
func Locate(ctx context.Context, rec Record, geocoder Geocoder, logger *slog.Logger) (Record, error) {
	if rec.Located {
		return rec, nil
	}
	if geocoder == nil {
		return rec, fmt.Errorf("%w: %s, %s (no geocoder configured)", ErrMissingCoordinates, rec.Municipality, rec.Department)
	}

	result, err := geocoder.ForwardGeocode(ctx, rec.Municipality, rec.Department)
	if err != nil {
		return rec, fmt.Errorf("%w: %s, %s: %w", ErrMissingCoordinates, rec.Municipality, rec.Department, err)
	}
	if !result.Found() {
		return rec, fmt.Errorf("%w: %s, %s (no geocoding match)", ErrMissingCoordinates, rec.Municipality, rec.Department)
	}

	logger.Debug("record located by geocoding",
		"municipality", rec.Municipality,
		"department", rec.Department,
		"place", result.PlaceName,
		"confidence", result.Confidence,
	)
	rec.Geo = Geo{Lat: result.Lat, Lon: result.Lon}
	rec.Located = true
	return rec, nil
}
