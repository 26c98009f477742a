package weather

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// usStateAbbrevs is the closed set of 50 state + DC two-letter codes.
var usStateAbbrevs = map[string]struct{}{
	"AL": {}, "AK": {}, "AZ": {}, "AR": {}, "CA": {}, "CO": {}, "CT": {},
	"DE": {}, "FL": {}, "GA": {}, "HI": {}, "ID": {}, "IL": {}, "IN": {},
	"IA": {}, "KS": {}, "KY": {}, "LA": {}, "ME": {}, "MD": {}, "MA": {},
	"MI": {}, "MN": {}, "MS": {}, "MO": {}, "MT": {}, "NE": {}, "NV": {},
	"NH": {}, "NJ": {}, "NM": {}, "NY": {}, "NC": {}, "ND": {}, "OH": {},
	"OK": {}, "OR": {}, "PA": {}, "RI": {}, "SC": {}, "SD": {}, "TN": {},
	"TX": {}, "UT": {}, "VT": {}, "VA": {}, "WA": {}, "WV": {}, "WI": {},
	"WY": {}, "DC": {},
}

var usStateNames = map[string]struct{}{
	"alabama": {}, "alaska": {}, "arizona": {}, "arkansas": {},
	"california": {}, "colorado": {}, "connecticut": {}, "delaware": {},
	"florida": {}, "georgia": {}, "hawaii": {}, "idaho": {}, "illinois": {},
	"indiana": {}, "iowa": {}, "kansas": {}, "kentucky": {}, "louisiana": {},
	"maine": {}, "maryland": {}, "massachusetts": {}, "michigan": {},
	"minnesota": {}, "mississippi": {}, "missouri": {}, "montana": {},
	"nebraska": {}, "nevada": {}, "new hampshire": {}, "new jersey": {},
	"new mexico": {}, "new york": {}, "north carolina": {}, "north dakota": {},
	"ohio": {}, "oklahoma": {}, "oregon": {}, "pennsylvania": {},
	"rhode island": {}, "south carolina": {}, "south dakota": {},
	"tennessee": {}, "texas": {}, "utah": {}, "vermont": {}, "virginia": {},
	"washington": {}, "west virginia": {}, "wisconsin": {}, "wyoming": {},
}

// NormalizeCityQuery rewrites a "City, Region" search into a fully qualified
// "City, Region, US" query when the region matches a US state abbreviation or
// full name, so the geocoder does not resolve to a same-named city abroad.
// Inputs with any other comma count, or an unrecognized region, pass through
// unchanged. Pure string transform; never fails.
func NormalizeCityQuery(q string) string {
	if strings.Count(q, ",") != 1 {
		return q
	}

	parts := strings.SplitN(q, ",", 2)
	city := strings.TrimSpace(parts[0])
	region := strings.TrimSpace(parts[1])

	_, isAbbrev := usStateAbbrevs[strings.ToUpper(region)]
	_, isName := usStateNames[strings.ToLower(region)]
	if !isAbbrev && !isName {
		return q
	}

	return city + ", " + region + ", US"
}

var titleCaser = cases.Title(language.AmericanEnglish)

// CapitalizeCity title-cases raw user input for display ("new york, ny"
// becomes "New York, Ny"), matching how the search page echoes the query.
func CapitalizeCity(s string) string {
	return titleCaser.String(s)
}
