package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/cityweather/cityweather/internal/weather"
)

var validate = validator.New()

// WeatherService is the slice of the core the handlers need.
type WeatherService interface {
	GetWeatherForCity(ctx context.Context, rawCity string) (weather.ForecastView, string, error)
}

type handlers struct {
	service WeatherService
	logger  *slog.Logger
}

// RegisterRoutes wires the page handlers into the Fiber app. The catch-all
// /:city route must be registered after every static route.
func RegisterRoutes(app *fiber.App, service WeatherService, logger *slog.Logger) {
	h := &handlers{service: service, logger: logger}

	app.Get("/", h.home)
	app.Post("/", h.search)
	app.Get("/:city", h.city)
}

func (h *handlers) home(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{})
}

// searchForm holds the search box submission.
type searchForm struct {
	Search string `validate:"required,max=100"`
}

func (h *handlers) search(c *fiber.Ctx) error {
	form := searchForm{Search: strings.TrimSpace(c.FormValue("search"))}
	if err := validate.Struct(form); err != nil {
		return c.Status(fiber.StatusBadRequest).Render("error", fiber.Map{
			"Message": "Please enter a city name to search for.",
		})
	}
	return c.Redirect("/"+url.PathEscape(form.Search), fiber.StatusSeeOther)
}

func (h *handlers) city(c *fiber.Ctx) error {
	raw := c.Params("city")
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	cityName := weather.CapitalizeCity(raw)

	view, displayName, err := h.service.GetWeatherForCity(c.Context(), cityName)
	if err != nil {
		var werr *weather.Error
		if errors.As(err, &werr) {
			h.logger.Warn("weather lookup failed",
				"city", cityName,
				"kind", werr.Kind,
				"code", werr.HTTPCode,
			)
			return c.Status(pageStatus(werr)).Render("error", fiber.Map{
				"Message": userMessage(werr, cityName),
			})
		}
		// Unrecognized failure; let the app error handler downgrade it.
		return err
	}

	now := time.Now()
	return c.Render("city", fiber.Map{
		"CityName":    displayName,
		"CurrentDate": now.Format("Monday, January 02"),
		"View":        view,
		"Days":        dayCells(now, view.FiveDay),
	})
}

// dayCell pairs a weekday label with one day of the forecast strip.
type dayCell struct {
	Label     string
	Temp      int
	Condition string
}

func dayCells(start time.Time, days []weather.DayForecast) []dayCell {
	cells := make([]dayCell, 0, len(days))
	for i, d := range days {
		cells = append(cells, dayCell{
			Label:     start.AddDate(0, 0, i).Format("Mon"),
			Temp:      d.Temp,
			Condition: d.Condition,
		})
	}
	return cells
}

// pageStatus picks the HTTP status for the rendered error page.
func pageStatus(werr *weather.Error) int {
	switch werr.Kind {
	case weather.KindTimeout:
		return http.StatusGatewayTimeout
	case weather.KindNetwork:
		return http.StatusBadGateway
	}
	if werr.HTTPCode != 0 {
		return werr.HTTPCode
	}
	return http.StatusInternalServerError
}

// userMessage maps a taxonomy error to the copy shown on the error page.
func userMessage(werr *weather.Error, cityName string) string {
	switch werr.Kind {
	case weather.KindNotFound:
		return "We couldn't find \"" + cityName + "\". Please check the spelling and try again."
	case weather.KindRateLimited:
		return "The weather service is busy right now. Please try again in a few minutes."
	case weather.KindTimeout:
		return "The weather service took too long to respond. Please try again."
	case weather.KindNetwork:
		return "We couldn't reach the weather service. Please try again shortly."
	default:
		return werr.Message
	}
}
