package style

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	pstrconv "github.com/tdewolff/parse/v2/strconv"
)

// ColorTransparent reports whether a computed color value is fully
// transparent: the keyword "transparent", or an rgba()/rgb() value whose
// alpha component is exactly zero. Anything unparseable is treated as
// opaque so questionable style data never hides content.
func ColorTransparent(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "transparent" {
		return true
	}
	args, ok := functionArgs(value, "rgba", "rgb")
	if !ok {
		return false
	}
	alpha, ok := alphaComponent(args)
	return ok && alpha == 0
}

// functionArgs returns the argument text of value when it is a call to one
// of the named CSS functions.
func functionArgs(value string, names ...string) (string, bool) {
	for _, name := range names {
		rest, ok := strings.CutPrefix(value, name+"(")
		if !ok {
			continue
		}
		args, ok := strings.CutSuffix(rest, ")")
		if !ok {
			return "", false
		}
		return args, true
	}
	return "", false
}

// alphaComponent extracts the alpha channel from rgb()/rgba() arguments,
// handling both the legacy comma syntax and the slash syntax. Returns false
// when no alpha component is present.
func alphaComponent(args string) (float64, bool) {
	var raw string
	if i := strings.LastIndexByte(args, '/'); i >= 0 {
		raw = args[i+1:]
	} else {
		parts := strings.Split(args, ",")
		if len(parts) != 4 {
			return 0, false
		}
		raw = parts[3]
	}
	raw = strings.TrimSpace(raw)
	percent := strings.HasSuffix(raw, "%")
	raw = strings.TrimSuffix(raw, "%")
	v, n := pstrconv.ParseFloat([]byte(raw))
	if n == 0 || n != len(raw) {
		return 0, false
	}
	if percent {
		v /= 100
	}
	return v, true
}

// namedColors covers the named values the resolver normalizes; unknown
// names pass through untouched.
var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"gray":    "#808080",
	"grey":    "#808080",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"magenta": "#ff00ff",
	"cyan":    "#00ffff",
}

// NormalizeColor converts a declared color to the rgb()/rgba() form a host
// style engine reports. Hex and named colors become rgb(...), "transparent"
// becomes a zero-alpha rgba(...), and everything else passes through.
func NormalizeColor(value string) string {
	v := strings.TrimSpace(strings.ToLower(value))
	if v == "" {
		return value
	}
	if v == "transparent" {
		return "rgba(0, 0, 0, 0)"
	}
	if hex, ok := namedColors[v]; ok {
		v = hex
	}
	if !strings.HasPrefix(v, "#") {
		return value
	}
	hex, alpha, hasAlpha := splitHexAlpha(v)
	c, err := colorful.Hex(hex)
	if err != nil {
		return value
	}
	r, g, b := c.RGB255()
	if hasAlpha {
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, alpha)
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}

// splitHexAlpha splits #rgba and #rrggbbaa values into the opaque hex part
// and a formatted alpha, since 4- and 8-digit hex carry their own alpha.
func splitHexAlpha(v string) (hex, alpha string, hasAlpha bool) {
	digits := v[1:]
	switch len(digits) {
	case 4:
		a := hexNibble(digits[3])
		if a < 0 {
			return v, "", false
		}
		return "#" + digits[:3], formatAlpha(float64(a*17) / 255), true
	case 8:
		hi, lo := hexNibble(digits[6]), hexNibble(digits[7])
		if hi < 0 || lo < 0 {
			return v, "", false
		}
		return "#" + digits[:6], formatAlpha(float64(hi*16+lo) / 255), true
	default:
		return v, "", false
	}
}

func hexNibble(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	default:
		return -1
	}
}

func formatAlpha(a float64) string {
	if a == 0 {
		return "0"
	}
	if a == 1 {
		return "1"
	}
	return strings.TrimRight(fmt.Sprintf("%.3f", a), "0")
}
