package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cityweather/cityweather/internal/weather"
)

// geoCandidateLimit asks for a few candidates for disambiguation headroom;
// only the first is used.
const geoCandidateLimit = "3"

type geoCandidate struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	State   string  `json:"state"`
	Country string  `json:"country"`
}

// Geocode resolves a (normalized) city query to coordinates using the
// direct-geocoding endpoint. An empty candidate list is a NotFound error
// referencing the query; non-200 statuses are classified.
func (c *Client) Geocode(ctx context.Context, query string) (coords weather.Coordinates, err error) {
	values := url.Values{}
	values.Set("q", query)
	values.Set("appid", c.apiKey)
	values.Set("limit", geoCandidateLimit)

	start := time.Now()
	defer func() {
		c.metrics.UpstreamDuration.WithLabelValues(endpointGeocoding).Observe(time.Since(start).Seconds())
		c.metrics.RecordUpstream(endpointGeocoding, err)
	}()

	resp, err := c.session.Get(ctx, c.geoURL+"?"+values.Encode())
	if err != nil {
		c.logger.Error("geocoding request failed", "query", query, "error", err)
		return weather.Coordinates{}, networkError()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return weather.Coordinates{}, c.classify(resp, "Geocoding")
	}

	var candidates []geoCandidate
	if err = json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		c.logger.Error("geocoding response decode failed", "query", query, "error", err)
		return weather.Coordinates{}, weather.NewError(weather.KindGeneric, resp.StatusCode,
			"invalid response from the geocoding service")
	}

	if len(candidates) == 0 {
		return weather.Coordinates{}, weather.NewError(weather.KindNotFound, http.StatusNotFound,
			fmt.Sprintf("city %q not found, please check the spelling", query))
	}

	first := candidates[0]
	name := first.Name
	if name == "" {
		name = query
	}
	if first.State != "" {
		name += ", " + first.State
	}
	if first.Country != "" {
		name += ", " + first.Country
	}

	return weather.Coordinates{
		Lat:         first.Lat,
		Lon:         first.Lon,
		DisplayName: name,
	}, nil
}
