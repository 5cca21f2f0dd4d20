package format

import (
	"math"
	"strconv"
	"strings"
)

// DefaultFontSizePx is the font size em and rem values are relative to when
// nothing else is known.
const DefaultFontSizePx = 16.0

const ptPerPx = 0.75

// PxToPt converts pixels to points.
func PxToPt(px float64) float64 {
	return px * ptPerPx
}

// PtToPx converts points to pixels.
func PtToPx(pt float64) float64 {
	return pt / ptPerPx
}

// splitUnit splits "12.5px" into 12.5 and "px".
func splitUnit(value string) (float64, string, bool) {
	value = strings.TrimSpace(strings.ToLower(value))
	end := 0
	for end < len(value) {
		ch := value[end]
		if (ch >= '0' && ch <= '9') || ch == '.' || ch == '-' || ch == '+' {
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0, "", false
	}
	n, err := strconv.ParseFloat(value[:end], 64)
	if err != nil {
		return 0, "", false
	}
	return n, strings.TrimSpace(value[end:]), true
}

// ParseValueWithUnit converts a CSS length to the given unit, "px" (the
// default) or "pt". em, rem and % are relative to basePx, or to
// DefaultFontSizePx when basePx is 0. Unknown values give 0.
func ParseValueWithUnit(value string, basePx float64, unit string) float64 {
	n, u, ok := splitUnit(value)
	if !ok {
		return 0
	}
	if basePx <= 0 {
		basePx = DefaultFontSizePx
	}
	var px float64
	switch u {
	case "px", "":
		px = n
	case "pt":
		px = PtToPx(n)
	case "em", "rem":
		px = n * basePx
	case "%":
		px = n * basePx / 100
	case "in":
		px = n * 96
	case "cm":
		px = n * 96 / 2.54
	case "mm":
		px = n * 96 / 25.4
	case "pc":
		px = n * 16
	default:
		return 0
	}
	if unit == "pt" {
		return PxToPt(px)
	}
	return px
}

// IsRelativeLength reports whether a length depends on the inherited font
// size.
func IsRelativeLength(value string) bool {
	_, u, ok := splitUnit(value)
	return ok && (u == "em" || u == "%")
}

// NormalizeFontSizeToPt converts a font size to points rounded to 0.01pt.
// ok is false for sizes that are not lengths.
func NormalizeFontSizeToPt(value string, basePx float64) (float64, bool) {
	if _, _, ok := splitUnit(value); !ok {
		return 0, false
	}
	pt := ParseValueWithUnit(value, basePx, "pt")
	return math.Round(pt*100) / 100, true
}

// FormatNumber renders a number with at most two decimals.
func FormatNumber(n float64) string {
	return strconv.FormatFloat(math.Round(n*100)/100, 'f', -1, 64)
}

// FormatPx renders a pixel length.
func FormatPx(px float64) string {
	return FormatNumber(px) + "px"
}

// FormatPt renders a point length.
func FormatPt(pt float64) string {
	return FormatNumber(pt) + "pt"
}
