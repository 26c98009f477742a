package httpapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cityweather/cityweather/internal/weather"
)

type stubService struct {
	gotCity string
	view    weather.ForecastView
	name    string
	err     error
}

func (s *stubService) GetWeatherForCity(_ context.Context, rawCity string) (weather.ForecastView, string, error) {
	s.gotCity = rawCity
	return s.view, s.name, s.err
}

func newTestApp(t *testing.T, service WeatherService) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{
		Views: html.New("../../../views", ".html"),
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	RegisterRoutes(app, service, logger)
	return app
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, string(body)
}

func TestHomePage(t *testing.T) {
	app := newTestApp(t, &stubService{})

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "search")
}

func TestSearchRedirectsToCityPage(t *testing.T) {
	app := newTestApp(t, &stubService{})

	form := url.Values{"search": {"New York"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, _ := doRequest(t, app, req)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/New%20York", resp.Header.Get("Location"))
}

func TestSearchEmptyInputRejected(t *testing.T) {
	app := newTestApp(t, &stubService{})

	form := url.Values{"search": {"   "}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, body := doRequest(t, app, req)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "enter a city name")
}

func TestCityPageRendersForecast(t *testing.T) {
	summary := "Expect a sunny day"
	service := &stubService{
		view: weather.ForecastView{
			CurrentTemp:      21,
			CurrentCondition: "Clear",
			WindSpeed:        3.2,
			Humidity:         52,
			FeelsLike:        19,
			UVI:              6.1,
			VisibilityKm:     8.5,
			MinTemp:          15,
			MaxTemp:          24,
			FiveDay: []weather.DayForecast{
				{Temp: 21, Condition: "Clear"},
				{Temp: 20, Condition: "Clouds"},
			},
			Summary: &summary,
		},
		name: "Austin, Texas, US",
	}
	app := newTestApp(t, service)

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/austin", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Austin", service.gotCity, "path segment is capitalized before lookup")
	assert.Contains(t, body, "Austin, Texas, US")
	assert.Contains(t, body, "Expect a sunny day")
	assert.Contains(t, body, "Clouds")
}

func TestCityPagePathUnescaped(t *testing.T) {
	service := &stubService{
		view: weather.ForecastView{},
		name: "New York, New York, US",
	}
	app := newTestApp(t, service)

	doRequest(t, app, httptest.NewRequest(http.MethodGet, "/new%20york", nil))

	assert.Equal(t, "New York", service.gotCity)
}

func TestCityNotFoundRendersErrorPage(t *testing.T) {
	service := &stubService{
		err: weather.NewError(weather.KindNotFound, http.StatusNotFound, "city not found"),
	}
	app := newTestApp(t, service)

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/zzzz", nil))

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "check the spelling")
}

func TestCityTimeoutRendersGatewayTimeout(t *testing.T) {
	service := &stubService{
		err: weather.NewError(weather.KindTimeout, 0, "timed out"),
	}
	app := newTestApp(t, service)

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/austin", nil))

	assert.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)
	assert.Contains(t, body, "took too long")
}

func TestCityGenericErrorShowsProviderMessage(t *testing.T) {
	service := &stubService{
		err: weather.NewError(weather.KindGeneric, http.StatusTeapot, "Server error: 418"),
	}
	app := newTestApp(t, service)

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/austin", nil))

	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.Contains(t, body, "Server error: 418")
}

func TestPageStatusFallsBackToInternalError(t *testing.T) {
	werr := weather.NewError(weather.KindGeneric, 0, "boom")
	assert.Equal(t, http.StatusInternalServerError, pageStatus(werr))
}
