package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// Cities is the ordered list of delivery cities.
var Cities = []string{
	"Beirut", "Tripoli", "Sidon", "Tyre", "Nabatieh", "Zahle", "Baalbek",
	"Jounieh", "Byblos", "Batroun", "Aley", "Bhamdoun",
}

// optional +961 / 961 / 0 prefix, then 7-8 digits
var phonePattern = regexp.MustCompile(`^(\+961|961|0)?[0-9]{7,8}$`)

// IsSupportedCity reports whether city is one of Cities, matched exactly.
func IsSupportedCity(city string) bool {
	for _, c := range Cities {
		if c == city {
			return true
		}
	}
	return false
}

// IsLebanesePhone reports whether phone, with all whitespace removed, is a
// Lebanese number.
func IsLebanesePhone(phone string) bool {
	return phonePattern.MatchString(stripSpace(phone))
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
