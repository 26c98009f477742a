package weather

import "math"

const (
	defaultCondition    = "Unknown"
	defaultVisibilityM  = 10000.0
	forecastDisplayDays = 5
)

// NormalizeForecast flattens a RawForecast into the fixed display fields.
// The current/daily presence check happens at fetch time; here every deeper
// missing sub-field falls back to a default (0, "Unknown", 10 km visibility)
// instead of failing the request. The five-day strip takes the first five
// daily entries in provider order, or fewer if the provider sent fewer.
func NormalizeForecast(raw RawForecast) ForecastView {
	view := ForecastView{
		CurrentCondition: defaultCondition,
		VisibilityKm:     defaultVisibilityM / 1000,
	}

	if cur := raw.Current; cur != nil {
		view.CurrentTemp = roundTemp(cur.Temp)
		view.FeelsLike = roundTemp(cur.FeelsLike)
		view.WindSpeed = cur.WindSpeed
		view.Humidity = cur.Humidity
		view.UVI = cur.UVI
		if cur.Visibility != nil {
			view.VisibilityKm = *cur.Visibility / 1000
		}
		if c := conditionMain(cur.Weather); c != "" {
			view.CurrentCondition = c
		}
	}

	if len(raw.Daily) == 0 {
		return view
	}

	today := raw.Daily[0]
	view.MinTemp = roundTemp(today.Temp.Min)
	view.MaxTemp = roundTemp(today.Temp.Max)
	if today.Summary != nil {
		s := *today.Summary
		view.Summary = &s
	}

	days := raw.Daily
	if len(days) > forecastDisplayDays {
		days = days[:forecastDisplayDays]
	}
	view.FiveDay = make([]DayForecast, 0, len(days))
	for _, d := range days {
		cond := conditionMain(d.Weather)
		if cond == "" {
			cond = defaultCondition
		}
		view.FiveDay = append(view.FiveDay, DayForecast{
			Temp:      roundTemp(d.Temp.Day),
			Condition: cond,
		})
	}

	return view
}

func roundTemp(v float64) int {
	return int(math.Round(v))
}

func conditionMain(conds []Condition) string {
	if len(conds) == 0 {
		return ""
	}
	return conds[0].Main
}
