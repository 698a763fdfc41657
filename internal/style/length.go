// internal/style/length.go
package style

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xkilldash9x/folio/internal/geom"
)

// ErrInvalidLength is returned when a CSS length cannot be parsed.
var ErrInvalidLength = errors.New("invalid length")

// Unit identifies how a Length is converted to points.
type Unit int

const (
	UnitPt Unit = iota
	UnitPx
	UnitPercent
	UnitEm
	UnitRem
	UnitEx
	UnitMm
	UnitCm
	UnitIn
	UnitPc
	UnitThin
	UnitMedium
	UnitThick
	UnitNormal
	UnitAuto
	UnitNone
)

var unitSuffixes = []struct {
	suffix string
	unit   Unit
}{
	// "rem" must be tried before "em".
	{"rem", UnitRem},
	{"em", UnitEm},
	{"ex", UnitEx},
	{"px", UnitPx},
	{"pt", UnitPt},
	{"pc", UnitPc},
	{"mm", UnitMm},
	{"cm", UnitCm},
	{"in", UnitIn},
	{"%", UnitPercent},
}

var lengthKeywords = map[string]Unit{
	"auto":   UnitAuto,
	"none":   UnitNone,
	"thin":   UnitThin,
	"medium": UnitMedium,
	"thick":  UnitThick,
	"normal": UnitNormal,
}

// Length is a specified CSS length: a number plus a unit, or a keyword.
type Length struct {
	Value float64
	Unit  Unit
}

var (
	// Auto is the "auto" keyword.
	Auto = Length{Unit: UnitAuto}
	// NoLength is the "none" keyword.
	NoLength = Length{Unit: UnitNone}
)

// Pt returns an absolute length in points.
func Pt(v float64) Length { return Length{Value: v, Unit: UnitPt} }

// Px returns a length in CSS pixels.
func Px(v float64) Length { return Length{Value: v, Unit: UnitPx} }

// Percent returns a percentage of the reference dimension.
func Percent(v float64) Length { return Length{Value: v, Unit: UnitPercent} }

// Em returns a length relative to the style's font size.
func Em(v float64) Length { return Length{Value: v, Unit: UnitEm} }

// IsAuto reports whether the length is the auto keyword.
func (l Length) IsAuto() bool { return l.Unit == UnitAuto }

// IsPercent reports whether the length depends on the reference dimension.
func (l Length) IsPercent() bool { return l.Unit == UnitPercent }

// ParseLength parses a CSS length such as "12px", "50%", "1.5em" or "auto".
// Unitless numbers are taken to be points.
func ParseLength(s string) (Length, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Length{}, fmt.Errorf("%w: empty value", ErrInvalidLength)
	}
	if u, ok := lengthKeywords[s]; ok {
		return Length{Unit: u}, nil
	}

	num, unit := s, UnitPt
	for _, us := range unitSuffixes {
		if strings.HasSuffix(s, us.suffix) {
			num, unit = strings.TrimSuffix(s, us.suffix), us.unit
			break
		}
	}

	v, err := ParseNumber(num)
	if err != nil {
		return Length{}, fmt.Errorf("%w: %q", ErrInvalidLength, s)
	}
	return Length{Value: v, Unit: unit}, nil
}

// ParseNumber parses a finite CSS number. NaN and infinities are rejected
// with ErrInvalidLength.
func ParseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLength, s)
	}
	return v, nil
}

// MustParseLength is ParseLength for constant input; it panics on error.
func MustParseLength(s string) Length {
	l, err := ParseLength(s)
	if err != nil {
		panic(err)
	}
	return l
}

func (l Length) String() string {
	for kw, u := range lengthKeywords {
		if u == l.Unit {
			return kw
		}
	}
	v := strconv.FormatFloat(l.Value, 'f', -1, 64)
	for _, us := range unitSuffixes {
		if us.unit == l.Unit {
			return v + us.suffix
		}
	}
	return v
}

// toPt converts a single length. ok is false for auto/none and for
// percentages when the reference is unresolved.
func (l Length) toPt(ref geom.Opt, fontSize, rootFontSize, dpi float64) (float64, bool) {
	switch l.Unit {
	case UnitAuto, UnitNone:
		return 0, false
	case UnitPt:
		return l.Value, true
	case UnitPx:
		return l.Value * 72 / dpi, true
	case UnitPercent:
		r, ok := ref.Get()
		if !ok {
			return 0, false
		}
		return l.Value / 100 * r, true
	case UnitEm:
		return l.Value * fontSize, true
	case UnitRem:
		return l.Value * rootFontSize, true
	case UnitEx:
		return l.Value * fontSize / 2, true
	case UnitMm:
		return l.Value * 72 / 25.4, true
	case UnitCm:
		return l.Value * 72 / 2.54, true
	case UnitIn:
		return l.Value * 72, true
	case UnitPc:
		return l.Value * 12, true
	case UnitThin:
		return 0.5, true
	case UnitMedium:
		return 1.5, true
	case UnitThick:
		return 2.5, true
	case UnitNormal:
		return ref.Get()
	}
	return 0, false
}
