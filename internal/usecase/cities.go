package usecase

// cityEntry is a static mapping from a city to its metropolitan IATA code.
type cityEntry struct {
	Code     string
	Name     string
	Airports []string
}

// knownCities covers common destinations so that the usual queries never hit
// the provider's reference-data endpoint. Keys are normalized names.
var knownCities = map[string]cityEntry{
	"paris":         {Code: "PAR", Name: "Paris", Airports: []string{"CDG", "ORY", "BVA"}},
	"bangkok":       {Code: "BKK", Name: "Bangkok", Airports: []string{"BKK", "DMK"}},
	"london":        {Code: "LON", Name: "London", Airports: []string{"LHR", "LGW", "STN", "LTN", "LCY"}},
	"new york":      {Code: "NYC", Name: "New York", Airports: []string{"JFK", "EWR", "LGA"}},
	"tokyo":         {Code: "TYO", Name: "Tokyo", Airports: []string{"HND", "NRT"}},
	"rome":          {Code: "ROM", Name: "Rome", Airports: []string{"FCO", "CIA"}},
	"milan":         {Code: "MIL", Name: "Milan", Airports: []string{"MXP", "LIN", "BGY"}},
	"madrid":        {Code: "MAD", Name: "Madrid", Airports: []string{"MAD"}},
	"barcelona":     {Code: "BCN", Name: "Barcelona", Airports: []string{"BCN"}},
	"lisbon":        {Code: "LIS", Name: "Lisbon", Airports: []string{"LIS"}},
	"berlin":        {Code: "BER", Name: "Berlin", Airports: []string{"BER"}},
	"amsterdam":     {Code: "AMS", Name: "Amsterdam", Airports: []string{"AMS"}},
	"brussels":      {Code: "BRU", Name: "Brussels", Airports: []string{"BRU", "CRL"}},
	"nice":          {Code: "NCE", Name: "Nice", Airports: []string{"NCE"}},
	"lyon":          {Code: "LYS", Name: "Lyon", Airports: []string{"LYS"}},
	"marseille":     {Code: "MRS", Name: "Marseille", Airports: []string{"MRS"}},
	"geneva":        {Code: "GVA", Name: "Geneva", Airports: []string{"GVA"}},
	"dubai":         {Code: "DXB", Name: "Dubai", Airports: []string{"DXB", "DWC"}},
	"istanbul":      {Code: "IST", Name: "Istanbul", Airports: []string{"IST", "SAW"}},
	"singapore":     {Code: "SIN", Name: "Singapore", Airports: []string{"SIN"}},
	"hong kong":     {Code: "HKG", Name: "Hong Kong", Airports: []string{"HKG"}},
	"bali":          {Code: "DPS", Name: "Denpasar", Airports: []string{"DPS"}},
	"jakarta":       {Code: "JKT", Name: "Jakarta", Airports: []string{"CGK", "HLP"}},
	"montreal":      {Code: "YMQ", Name: "Montreal", Airports: []string{"YUL"}},
	"los angeles":   {Code: "LAX", Name: "Los Angeles", Airports: []string{"LAX"}},
	"san francisco": {Code: "SFO", Name: "San Francisco", Airports: []string{"SFO"}},
	"marrakech":     {Code: "RAK", Name: "Marrakech", Airports: []string{"RAK"}},
	"sydney":        {Code: "SYD", Name: "Sydney", Airports: []string{"SYD"}},
}

// cityAliases maps alternate spellings to a knownCities key.
var cityAliases = map[string]string{
	"nyc":              "new york",
	"new york city":    "new york",
	"londres":          "london",
	"rome italy":       "rome",
	"roma":             "rome",
	"milano":           "milan",
	"lisboa":           "lisbon",
	"bruxelles":        "brussels",
	"geneve":           "geneva",
	"krung thep":       "bangkok",
	"denpasar":         "bali",
	"tokio":            "tokyo",
	"hongkong":         "hong kong",
	"la":               "los angeles",
	"sf":               "san francisco",
	"marrakesh":        "marrakech",
	"paris france":     "paris",
	"bangkok thailand": "bangkok",
}

// lookupCity returns the static entry for a normalized name, following aliases.
func lookupCity(normalized string) (cityEntry, bool) {
	if canonical, ok := cityAliases[normalized]; ok {
		normalized = canonical
	}
	entry, ok := knownCities[normalized]
	return entry, ok
}
