package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// PriceDecoration is one piece of text stripped from a price string before it is parsed.
// Tokens are matched against the lower-cased input.
type PriceDecoration struct {
	Token string
	Rule  string
}

// PriceDecorations is applied in order. Longer tokens that share a prefix come first.
var PriceDecorations = []PriceDecoration{
	{Token: "rs.", Rule: `rupee prefix with a period, "Rs. 1,200"`},
	{Token: "rs", Rule: `rupee prefix without a period, "Rs 450"`},
	{Token: "pkr", Rule: `ISO currency code, "PKR 900"`},
	{Token: "from", Rule: `promotional lead-in, "From Rs.500"`},
	{Token: "/-", Rule: `trailing dash used on printed menus, "500/-"`},
	{Token: ",", Rule: `thousands separator, "1,200"`},
}

// StripPriceDecorations lower-cases s and removes every PriceDecorations token.
func StripPriceDecorations(s string) string {
	s = strings.ToLower(s)
	for _, d := range PriceDecorations {
		s = strings.ReplaceAll(s, d.Token, "")
	}
	return strings.TrimSpace(s)
}

// Price converts a catalog price value to a non-negative float.
// Anything that cannot be read as a price yields 0.
func Price(v interface{}) float64 {
	p, _ := parsePrice(v)
	return p
}

func parsePrice(v interface{}) (float64, bool) {
	var (
		f  float64
		ok bool
	)
	if s, isString := v.(string); isString {
		var err error
		f, err = strconv.ParseFloat(StripPriceDecorations(s), 64)
		ok = err == nil
	} else {
		f, ok = number(v)
	}
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}
	return f, true
}

// number reports the float value of any Go numeric kind.
func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
