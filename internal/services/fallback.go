package services

// fallbackRates are approximate and only used when the live provider fails.
// They are never written to the cache.
var fallbackRates = map[string]map[string]float64{
	"USD": {"EUR": 0.85, "GBP": 0.73, "JPY": 110.0, "CAD": 1.25, "AUD": 1.35},
	"EUR": {"USD": 1.18, "GBP": 0.86, "JPY": 129.0},
	"GBP": {"USD": 1.37, "EUR": 1.16, "JPY": 151.0},
}

func fallbackRate(from, to string) (float64, bool) {
	rate, ok := fallbackRates[from][to]
	return rate, ok
}
