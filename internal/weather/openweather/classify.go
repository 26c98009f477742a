package openweather

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/cityweather/cityweather/internal/weather"
)

// providerError mirrors the JSON error body OpenWeatherMap embeds in
// non-200 responses.
type providerError struct {
	Cod        statusCode `json:"cod"`
	Message    string     `json:"message"`
	Parameters []string   `json:"parameters"`
}

// statusCode tolerates the provider's habit of returning `cod` as a number
// on some endpoints and a quoted string on others.
type statusCode int

func (s *statusCode) UnmarshalJSON(data []byte) error {
	n, err := strconv.Atoi(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*s = statusCode(n)
	return nil
}

// classify maps a known-bad provider response to a taxonomy error. It reads
// the embedded error body when parseable; the generic "Server error" fallback
// applies only when the body is unparseable or carries neither a code nor a
// message. A message without a cod passes through verbatim, keyed to the raw
// HTTP status. Always returns a non-nil error.
func (c *Client) classify(resp *http.Response, endpoint string) *weather.Error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var pe providerError
	if err := json.Unmarshal(body, &pe); err != nil || (pe.Cod == 0 && pe.Message == "") {
		return weather.NewError(weather.KindGeneric, resp.StatusCode,
			fmt.Sprintf("Server error: %d", resp.StatusCode))
	}

	code := int(pe.Cod)
	if code == 0 {
		code = resp.StatusCode
	}
	c.logger.Error("provider error",
		"endpoint", endpoint,
		"code", code,
		"message", pe.Message,
	)

	switch code {
	case http.StatusUnauthorized:
		return weather.NewError(weather.KindAuth, code,
			"invalid API key, please check your OpenWeatherMap API key")
	case http.StatusNotFound:
		return weather.NewError(weather.KindNotFound, code,
			"weather data not found for the specified location")
	case http.StatusTooManyRequests:
		return weather.NewError(weather.KindRateLimited, code,
			"API quota exceeded, please try again later")
	case http.StatusBadRequest:
		joined := "unknown"
		if len(pe.Parameters) > 0 {
			joined = strings.Join(pe.Parameters, ", ")
		}
		werr := weather.NewError(weather.KindBadRequest, code,
			"invalid request parameters: "+joined)
		werr.Parameters = pe.Parameters
		return werr
	default:
		message := pe.Message
		if message == "" {
			message = fmt.Sprintf("Server error: %d", resp.StatusCode)
		}
		return weather.NewError(weather.KindGeneric, code, message)
	}
}
