package openweather

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cityweather/cityweather/internal/weather"
)

// Forecast fetches current plus daily conditions for coordinates from the
// One Call endpoint, in metric units. Minutely and alert blocks are excluded
// since nothing renders them. A 200 response missing the current or daily
// section is rejected as incomplete data before it reaches normalization.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) (raw weather.RawForecast, err error) {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	values.Set("appid", c.apiKey)
	values.Set("units", "metric")
	values.Set("exclude", "minutely,alerts")

	start := time.Now()
	defer func() {
		c.metrics.UpstreamDuration.WithLabelValues(endpointForecast).Observe(time.Since(start).Seconds())
		c.metrics.RecordUpstream(endpointForecast, err)
	}()

	resp, err := c.session.Get(ctx, c.owmURL+"?"+values.Encode())
	if err != nil {
		c.logger.Error("forecast request failed", "lat", lat, "lon", lon, "error", err)
		if isTimeout(err) {
			return weather.RawForecast{}, weather.NewError(weather.KindTimeout, 0,
				"request timed out, please try again")
		}
		return weather.RawForecast{}, networkError()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// A 401 here almost always means the key lacks the One Call 3.0
		// subscription rather than being invalid, so give targeted guidance.
		if resp.StatusCode == http.StatusUnauthorized {
			return weather.RawForecast{}, weather.NewError(weather.KindAuth, http.StatusUnauthorized,
				"API key not authorized for One Call API 3.0; make sure your OpenWeatherMap plan includes it")
		}
		return weather.RawForecast{}, c.classify(resp, "Forecast")
	}

	if err = json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		c.logger.Error("forecast response decode failed", "lat", lat, "lon", lon, "error", err)
		return weather.RawForecast{}, weather.NewError(weather.KindGeneric, resp.StatusCode,
			"invalid response from the forecast service")
	}

	if raw.Current == nil {
		return weather.RawForecast{}, incompleteData("current")
	}
	if raw.Daily == nil {
		return weather.RawForecast{}, incompleteData("daily")
	}

	return raw, nil
}

func incompleteData(section string) *weather.Error {
	return weather.NewError(weather.KindIncompleteData, http.StatusInternalServerError,
		"incomplete weather data received: missing "+section)
}
