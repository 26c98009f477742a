package weather

// Coordinates is a resolved geocoding result: a lat/lon pair plus the
// human-readable name shown on the forecast page.
type Coordinates struct {
	Lat         float64
	Lon         float64
	DisplayName string
}

// RawForecast is the decoded One Call payload. Current and Daily use
// nil-able types so a missing top-level key is distinguishable from an
// empty value; both must be present before normalization.
type RawForecast struct {
	Current *CurrentConditions `json:"current"`
	Daily   []DailyEntry       `json:"daily"`
}

// CurrentConditions holds the subset of the `current` block we render.
type CurrentConditions struct {
	Temp       float64     `json:"temp"`
	FeelsLike  float64     `json:"feels_like"`
	Humidity   int         `json:"humidity"`
	UVI        float64     `json:"uvi"`
	Visibility *float64    `json:"visibility"` // meters; nil when the provider omits it
	WindSpeed  float64     `json:"wind_speed"`
	Weather    []Condition `json:"weather"`
}

// DailyEntry holds one day of the `daily` array. Index 0 is today.
type DailyEntry struct {
	Temp struct {
		Day float64 `json:"day"`
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	} `json:"temp"`
	Weather []Condition `json:"weather"`
	Summary *string     `json:"summary"`
}

// Condition is the provider's short weather descriptor ("Clear", "Rain", ...).
type Condition struct {
	Main string `json:"main"`
}

// DayForecast is one cell of the five-day strip.
type DayForecast struct {
	Temp      int
	Condition string
}

// ForecastView is the flattened, display-ready forecast. Temperature-like
// fields are rounded to whole units; Summary is nil when the provider sent
// no narrative so templates can distinguish "no summary" from an empty one.
type ForecastView struct {
	CurrentTemp      int
	CurrentCondition string
	WindSpeed        float64
	Humidity         int
	FeelsLike        int
	UVI              float64
	VisibilityKm     float64
	MinTemp          int
	MaxTemp          int
	FiveDay          []DayForecast
	Summary          *string
}
