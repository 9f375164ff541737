package normalizer

import (
	"regexp"
	"strconv"
	"strings"
)

// BaggageType is one of six mutually exclusive baggage categories. The
// distinction between "carry-on explicitly zero" and "carry-on not specified"
// is load-bearing: preference matching downstream treats them differently,
// using light-fare carrier conventions as the fallback signal for the
// unspecified case.
type BaggageType string

const (
	BaggageNone               BaggageType = "none"
	BaggageUnspecifiedCarryOn BaggageType = "unspecified-carryon"
	BaggageCarryOn            BaggageType = "carryon"
	BaggageBackpack           BaggageType = "backpack"
	BaggageChecked            BaggageType = "checked"
	BaggageCheckedPlusCarryOn BaggageType = "checked-plus-carryon"
)

// CarryOnBag is the raw carry-on descriptor from a fare. A nil *CarryOnBag
// means the fare said nothing about carry-on; Quantity "0" means the fare
// explicitly excludes it.
type CarryOnBag struct {
	Quantity   string `json:"quantity"`
	Weight     string `json:"weight,omitempty"`
	Dimensions string `json:"dimensions,omitempty"`
}

var checkedPiecesRe = regexp.MustCompile(`^(\d+)PC$`)

var backpackKeywords = []string{
	"mochila",
	"backpack",
	"personal item",
	"articulo personal",
	"artículo personal",
}

// CheckedPieces parses a checked-baggage code of the form "2PC" into a piece
// count. Anything else yields 0 with ok=false.
func CheckedPieces(code string) (int, bool) {
	m := checkedPiecesRe.FindStringSubmatch(strings.TrimSpace(code))
	if m == nil {
		return 0, false
	}
	pieces, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return pieces, true
}

// BaggageCategory classifies a fare's baggage allowance. checkedCode is the
// provider's piece code ("0PC", "2PC"); carryOn is nil when the fare carried
// no carry-on descriptor at all.
func BaggageCategory(checkedCode string, carryOn *CarryOnBag) BaggageType {
	pieces, known := CheckedPieces(checkedCode)

	carryOnPresent := false
	if carryOn != nil {
		qty, err := strconv.Atoi(strings.TrimSpace(carryOn.Quantity))
		carryOnPresent = err == nil && qty > 0
	}

	if pieces > 0 {
		if carryOnPresent {
			return BaggageCheckedPlusCarryOn
		}
		return BaggageChecked
	}

	if carryOn == nil {
		if known {
			return BaggageUnspecifiedCarryOn
		}
		return BaggageNone
	}

	if !carryOnPresent {
		return BaggageNone
	}

	if isBackpack(carryOn.Dimensions) {
		return BaggageBackpack
	}
	return BaggageCarryOn
}

func isBackpack(dimensions string) bool {
	lower := strings.ToLower(dimensions)
	for _, kw := range backpackKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
