package format

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// nonPriceTerms are descriptive values scrapers put in the price column.
// They are never rendered as a price.
var nonPriceTerms = map[string]bool{
	"available":     true,
	"unavailable":   true,
	"sold out":      true,
	"soldout":       true,
	"full":          true,
	"fully booked":  true,
	"booked":        true,
	"few left":      true,
	"tbd":           true,
	"tba":           true,
	"tbc":           true,
	"n/a":           true,
	"na":            true,
	"none":          true,
	"waitlist":      true,
	"join waitlist": true,
	"closed":        true,
	"call":          true,
	"call to book":  true,
	"enquire":       true,
	"contact":       true,
	"see website":   true,
	"price varies":  true,
	"-":             true,
}

var (
	numberPattern         = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?|\.\d+`)
	symbolThenNumber      = regexp.MustCompile(`[$£€]\s*(\d[\d,]*(?:\.\d+)?|\.\d+)`)
	numberThenSymbol      = regexp.MustCompile(`(\d[\d,]*(?:\.\d+)?|\.\d+)\s*[$£€]`)
	collapseSpacesPattern = regexp.MustCompile(`\s+`)
	rangePattern          = regexp.MustCompile(`\d\s*[-–—]\s*[$£€]?\s*\d`)
)

// Price renders a scraped price as a currency amount with exactly two decimals.
// Returns false when the value is not a price: empty, a descriptive term such as "Sold Out",
// or text without any number.
//
// The currency symbol is the first of $, £ or € found in the input, defaulting to $.
// When a symbol is present the number written next to it is used; if no number is adjacent,
// the largest number wins, so "1h : $45" renders "$45.00" rather than the duration.
// Without a symbol the first number is used.
func Price(value interface{}) (string, bool) {
	text, ok := priceText(value)
	if !ok {
		return "", false
	}

	text = strings.TrimSpace(text)
	if text == "" || isNonPriceTerm(text) {
		return "", false
	}

	symbol, hasSymbol := currencySymbol(text)

	var amount float64
	var found bool
	if hasSymbol {
		amount, found = adjacentAmount(text)
		if !found {
			amount, found = largestAmount(text)
		}
	} else {
		amount, found = firstAmount(text)
	}
	if !found {
		return "", false
	}

	return fmt.Sprintf("%s%.2f", symbol, amount), true
}

// PriceOrText renders a price when possible, otherwise the trimmed original text,
// otherwise "-". Used where descriptive values like "Sold Out" are still worth showing.
// Ranges such as "$37.5 - $50" keep both ends.
func PriceOrText(value interface{}) string {
	if text, ok := value.(string); ok && rangePattern.MatchString(text) {
		return PriceRange(text)
	}
	if formatted, ok := Price(value); ok {
		return formatted
	}
	text, _ := priceText(value)
	text = strings.TrimSpace(text)
	if text == "" {
		return "-"
	}
	return text
}

// PriceRange formats each side of a range such as "$37.5 - $50".
// Sides that are not prices render as "-".
func PriceRange(priceRange string) string {
	priceRange = strings.TrimSpace(priceRange)
	if priceRange == "" || priceRange == "-" {
		return "-"
	}

	parts := strings.FieldsFunc(priceRange, func(r rune) bool {
		return r == '-' || r == '–' || r == '—'
	})

	formatted := make([]string, 0, len(parts))
	for _, part := range parts {
		if p, ok := Price(part); ok {
			formatted = append(formatted, p)
		} else {
			formatted = append(formatted, "-")
		}
	}
	if len(formatted) == 0 {
		return "-"
	}
	return strings.Join(formatted, " - ")
}

func priceText(value interface{}) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", false
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	default:
		return fmt.Sprint(v), true
	}
}

func isNonPriceTerm(text string) bool {
	normalized := strings.ToLower(collapseSpacesPattern.ReplaceAllString(text, " "))
	normalized = strings.Trim(normalized, " .!:;")
	return nonPriceTerms[normalized]
}

func currencySymbol(text string) (string, bool) {
	idx := strings.IndexAny(text, "$£€")
	if idx < 0 {
		return "$", false
	}
	for _, r := range text[idx:] {
		return string(r), true
	}
	return "$", false
}

func adjacentAmount(text string) (float64, bool) {
	if m := symbolThenNumber.FindStringSubmatch(text); m != nil {
		return parseAmount(m[1])
	}
	if m := numberThenSymbol.FindStringSubmatch(text); m != nil {
		return parseAmount(m[1])
	}
	return 0, false
}

func largestAmount(text string) (float64, bool) {
	var best float64
	found := false
	for _, match := range numberPattern.FindAllString(text, -1) {
		n, ok := parseAmount(match)
		if !ok {
			continue
		}
		if !found || n > best {
			best = n
			found = true
		}
	}
	return best, found
}

func firstAmount(text string) (float64, bool) {
	match := numberPattern.FindString(text)
	if match == "" {
		return 0, false
	}
	return parseAmount(match)
}

func parseAmount(s string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
