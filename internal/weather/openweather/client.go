package openweather

import (
	"context"
	"errors"
	"log/slog"
	"net"

	"github.com/cityweather/cityweather/internal/observability"
	"github.com/cityweather/cityweather/internal/weather"
)

const (
	geocodingURL = "https://api.openweathermap.org/geo/1.0/direct"
	oneCallURL   = "https://api.openweathermap.org/data/3.0/onecall"

	endpointGeocoding = "geocoding"
	endpointForecast  = "forecast"
)

// Client implements weather.Geocoder and weather.ForecastFetcher against
// OpenWeatherMap. All outbound calls go through the shared Session.
type Client struct {
	apiKey  string
	session *Session
	geoURL  string
	owmURL  string
	metrics *observability.Metrics
	logger  *slog.Logger
}

func NewClient(apiKey string, session *Session, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		session: session,
		geoURL:  geocodingURL,
		owmURL:  oneCallURL,
		metrics: metrics,
		logger:  logger,
	}
}

// networkError wraps a transport failure that never produced an HTTP status.
func networkError() *weather.Error {
	return weather.NewError(weather.KindNetwork, 0, "network error: unable to reach the weather service")
}

// isTimeout reports whether err is a deadline rather than a generic
// connection failure.
func isTimeout(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
