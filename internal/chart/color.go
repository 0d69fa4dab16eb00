package chart

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ParseColor understands #rgb, #rrggbb, rgb(r, g, b) and rgba(r, g, b, a).
func ParseColor(s string) (drawing.Color, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case strings.HasPrefix(s, "#"):
		hex := s[1:]
		if (len(hex) != 3 && len(hex) != 6) || !isHex(hex) {
			return drawing.Color{}, false
		}
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		return drawing.ColorFromHex(hex), true
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseRGB(s[len("rgba("):len(s)-1], true)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseRGB(s[len("rgb("):len(s)-1], false)
	}
	return drawing.Color{}, false
}

// MustColor parses s, falling back to DefaultColor.
func MustColor(s string) drawing.Color {
	if c, ok := ParseColor(s); ok {
		return c
	}
	c, _ := ParseColor(DefaultColor)
	return c
}

// HexString formats c as #rrggbb, dropping alpha.
func HexString(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func isHex(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return false
		}
	}
	return true
}

func parseRGB(body string, withAlpha bool) (drawing.Color, bool) {
	parts := strings.Split(body, ",")
	want := 3
	if withAlpha {
		want = 4
	}
	if len(parts) != want {
		return drawing.Color{}, false
	}

	var channels [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return drawing.Color{}, false
		}
		channels[i] = uint8(v)
	}

	alpha := uint8(255)
	if withAlpha {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return drawing.Color{}, false
		}
		alpha = uint8(a*255 + 0.5)
	}

	return drawing.Color{R: channels[0], G: channels[1], B: channels[2], A: alpha}, true
}
