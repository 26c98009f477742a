package weather

import (
	"context"
	"log/slog"
)

// Geocoder resolves a search query to coordinates and a display name.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (Coordinates, error)
}

// ForecastFetcher retrieves the raw forecast payload for coordinates.
type ForecastFetcher interface {
	Forecast(ctx context.Context, lat, lon float64) (RawForecast, error)
}

// Service runs the full city → forecast pipeline: query normalization,
// geocoding, forecast fetch, response flattening. The two upstream calls are
// sequential because the second needs the first's coordinates.
type Service struct {
	geocoder Geocoder
	fetcher  ForecastFetcher
	logger   *slog.Logger
}

func NewService(geocoder Geocoder, fetcher ForecastFetcher, logger *slog.Logger) *Service {
	return &Service{
		geocoder: geocoder,
		fetcher:  fetcher,
		logger:   logger,
	}
}

// GetWeatherForCity resolves raw user input to a flattened forecast and the
// location's display name. Errors from either upstream stage propagate
// unchanged as *Error values for the boundary to render.
func (s *Service) GetWeatherForCity(ctx context.Context, rawCity string) (ForecastView, string, error) {
	query := NormalizeCityQuery(rawCity)
	if query != rawCity {
		s.logger.Debug("qualified US city query", "input", rawCity, "query", query)
	}

	coords, err := s.geocoder.Geocode(ctx, query)
	if err != nil {
		return ForecastView{}, "", err
	}

	raw, err := s.fetcher.Forecast(ctx, coords.Lat, coords.Lon)
	if err != nil {
		return ForecastView{}, "", err
	}

	return NormalizeForecast(raw), coords.DisplayName, nil
}
