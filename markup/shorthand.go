package markup

import (
	"regexp"
	"strings"
)

// Attributes carrying colors and thicknesses which are always simplified.
var (
	colorAttributes = map[string]bool{
		"Color":       true,
		"BorderBrush": true,
		"Fill":        true,
		"StrokeBrush": true,
		"Background":  true,
	}
	thicknessAttributes = map[string]bool{
		"BorderThickness": true,
		"StrokeThickness": true,
		"CornerRadius":    true,
	}
)

var (
	integerToken = regexp.MustCompile(`^-?\d+$`)
	hexDigits    = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)
)

// SimplifyHexColor drops fully opaque alpha channel: "#FF1A2B3C" becomes
// "#1A2B3C". Anything else is returned unchanged.
func SimplifyHexColor(hex string) string {
	if len(hex) == 9 && strings.HasPrefix(hex, "#FF") && hexDigits.MatchString(hex[3:]) {
		return "#" + hex[3:]
	}
	return hex
}

// SimplifyThickness collapses four component value: "5,5,5,5" becomes "5"
// and "1,2,1,2" becomes "1,2". Only integer components are considered,
// values of any other shape are returned unchanged.
func SimplifyThickness(s string) string {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return s
	}
	for _, p := range parts {
		if !integerToken.MatchString(p) {
			return s
		}
	}
	switch {
	case parts[0] == parts[1] && parts[1] == parts[2] && parts[2] == parts[3]:
		return parts[0]
	case parts[0] == parts[2] && parts[1] == parts[3]:
		return parts[0] + "," + parts[1]
	}
	return s
}
