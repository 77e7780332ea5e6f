package convert

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/microsoft/figma-variables-import/internal/variable"
)

// remPixels is the assumed root font size when converting rem to pixels.
const remPixels = 16

var fontWeightNames = map[int]string{
	100: "hairline",
	200: "thin",
	300: "light",
	400: "semilight",
	500: "regular",
	600: "semibold",
	700: "bold",
	800: "extrabold",
	900: "black",
}

// leadingFloat matches the longest decimal prefix of a string, so "16px"
// parses as 16.
var leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// parseFloat converts a number or numeric string. It returns NaN when there is
// no leading decimal number.
func parseFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		m := leadingFloat.FindString(strings.TrimSpace(n))
		if m == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Color converts "#RRGGBB" or "#RRGGBBAA" into normalised channels.
// The alpha channel is rounded to two decimal places.
func Color(v any) (variable.Color, bool) {
	s, ok := v.(string)
	if !ok || !strings.HasPrefix(s, "#") || (len(s) != 7 && len(s) != 9) {
		return variable.Color{}, false
	}

	var ch [4]float64
	ch[3] = 0xff
	for i := 0; i*2+1 < len(s); i++ {
		n, err := strconv.ParseUint(s[1+i*2:3+i*2], 16, 8)
		if err != nil {
			return variable.Color{}, false
		}
		ch[i] = float64(n)
	}

	return variable.Color{
		R: ch[0] / 0xff,
		G: ch[1] / 0xff,
		B: ch[2] / 0xff,
		A: math.Round(ch[3]*100/0xff) / 100,
	}, true
}

// Number converts a number or numeric string.
func Number(v any) (variable.Float, bool) {
	f := parseFloat(v)
	if !finite(f) {
		return 0, false
	}
	return variable.Float(f), true
}

// FontSize converts a rem value to pixels.
func FontSize(v any) (variable.Float, bool) {
	f, ok := Number(v)
	if !ok {
		return 0, false
	}
	return f * remPixels, true
}

// LineHeight converts a percentage (150 or "150%") to a multiplier (1.5).
func LineHeight(v any) (variable.Float, bool) {
	f, ok := Number(v)
	if !ok {
		return 0, false
	}
	return f / 100, true
}

// Boolean accepts only JSON booleans.
func Boolean(v any) (variable.Bool, bool) {
	b, ok := v.(bool)
	return variable.Bool(b), ok
}

// String passes strings through. Other values become their JSON text.
func String(v any) variable.String {
	if s, ok := v.(string); ok {
		return variable.String(s)
	}
	return variable.String(Literal(v))
}

// FontFamily takes the first family of a CSS font stack and strips one layer
// of quotes: `"Segoe UI", sans-serif` becomes `Segoe UI`.
func FontFamily(v any) variable.String {
	s, ok := v.(string)
	if !ok {
		return String(v)
	}
	first, _, _ := strings.Cut(s, ",")
	first = strings.TrimSpace(first)
	if len(first) > 0 && (first[0] == '"' || first[0] == '\'') {
		first = first[1:]
	}
	if len(first) > 0 && (first[len(first)-1] == '"' || first[len(first)-1] == '\'') {
		first = first[:len(first)-1]
	}
	return variable.String(first)
}

// FontWeight maps 100..900 onto weight names. Anything else passes through.
func FontWeight(v any) variable.String {
	f := parseFloat(v)
	if finite(f) && f == math.Trunc(f) {
		if name, ok := fontWeightNames[int(f)]; ok {
			return variable.String(name)
		}
	}
	if n, ok := v.(float64); ok {
		return variable.String(strconv.FormatFloat(n, 'f', -1, 64))
	}
	return String(v)
}
