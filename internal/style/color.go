// internal/style/color.go
package style

import (
	"strconv"
	"strings"
)

// Color represents an RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Transparent reports whether the color paints nothing.
func (c Color) Transparent() bool { return c.A == 0 }

var cssColors = map[string]Color{
	"black":       {0, 0, 0, 255},
	"white":       {255, 255, 255, 255},
	"red":         {255, 0, 0, 255},
	"green":       {0, 128, 0, 255},
	"blue":        {0, 0, 255, 255},
	"yellow":      {255, 255, 0, 255},
	"gray":        {128, 128, 128, 255},
	"grey":        {128, 128, 128, 255},
	"silver":      {192, 192, 192, 255},
	"navy":        {0, 0, 128, 255},
	"orange":      {255, 165, 0, 255},
	"transparent": {0, 0, 0, 0},
}

// ParseColor parses a named color, #rgb, #rrggbb, rgb() or rgba().
func ParseColor(value string) (Color, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	if c, ok := cssColors[value]; ok {
		return c, true
	}
	if strings.HasPrefix(value, "#") {
		return parseHexColor(value[1:])
	}
	if strings.HasPrefix(value, "rgb") {
		return parseRGBColor(value)
	}
	return Color{}, false
}

func parseHexColor(hex string) (Color, bool) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
}

func parseRGBColor(value string) (Color, bool) {
	open, closing := strings.IndexByte(value, '('), strings.LastIndexByte(value, ')')
	if open < 0 || closing < open {
		return Color{}, false
	}
	parts := strings.Split(value[open+1:closing], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, false
	}

	var comps [4]uint8
	comps[3] = 255
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if i == 3 {
			a, err := ParseNumber(p)
			if err != nil {
				return Color{}, false
			}
			comps[3] = uint8(clamp(a, 0, 1)*255 + 0.5)
			continue
		}
		if strings.HasSuffix(p, "%") {
			f, err := ParseNumber(strings.TrimSuffix(p, "%"))
			if err != nil {
				return Color{}, false
			}
			comps[i] = uint8(clamp(f, 0, 100)/100*255 + 0.5)
			continue
		}
		f, err := ParseNumber(p)
		if err != nil {
			return Color{}, false
		}
		comps[i] = uint8(clamp(f, 0, 255))
	}
	return Color{R: comps[0], G: comps[1], B: comps[2], A: comps[3]}, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
