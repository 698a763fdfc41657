// internal/style/resolver.go
package style

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/xkilldash9x/folio/internal/geom"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// DefaultUserAgentCSS gives elements their print defaults.
const DefaultUserAgentCSS = `
html, body, div, p, h1, h2, h3, h4, h5, h6, ul, ol, form, header, footer,
section, article, nav, main, address, blockquote, pre, hr, dl, dt, dd {
    display: block;
}
head, script, style, title, meta, link, template { display: none; }
li { display: list-item; }
img { display: inline-block; }
table { display: table; }
tr { display: table-row; }
td, th { display: table-cell; }

body { margin: 8px; }
p { margin: 1em 0; }
h1 { font-size: 2em; margin: 0.67em 0; }
h2 { font-size: 1.5em; margin: 0.83em 0; }
h3 { font-size: 1.17em; margin: 1em 0; }
ul, ol { margin: 1em 0; padding-left: 40px; }
ol { list-style-type: decimal; }
pre { white-space: pre; margin: 1em 0; }
blockquote { margin: 1em 40px; }
hr { border: 1px solid gray; margin: 0.5em 0; }
`

// fontSizeKeywords maps absolute-size keywords to points.
var fontSizeKeywords = map[string]float64{
	"xx-small": 7, "x-small": 8, "small": 10, "medium": DefaultFontSize,
	"large": 14, "x-large": 18, "xx-large": 24,
}

type origin int

const (
	originUserAgent origin = iota
	originAuthor
	originInline
)

type rankedDeclaration struct {
	decl    Declaration
	origin  origin
	a, b, c int
	order   int
}

func (d rankedDeclaration) priority() int {
	switch d.origin {
	case originUserAgent:
		if d.decl.Important {
			return 5
		}
		return 1
	case originAuthor:
		if d.decl.Important {
			return 4
		}
		return 2
	default:
		if d.decl.Important {
			return 4
		}
		return 3
	}
}

// Resolver computes a Style for each document node: user-agent defaults,
// author sheets and inline style attributes, then inheritance.
type Resolver struct {
	userAgent    *Sheet
	author       []*Sheet
	dpi          float64
	rootFontSize float64
	logger       *zap.Logger
}

// NewResolver creates a resolver. dpi converts px to pt; fontSize is the
// root font size in pt.
func NewResolver(dpi, fontSize float64, logger *zap.Logger) *Resolver {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		userAgent:    ParseSheet(DefaultUserAgentCSS),
		dpi:          dpi,
		rootFontSize: fontSize,
		logger:       logger.Named("style"),
	}
}

// AddSheet appends an author stylesheet. Later sheets win ties.
func (r *Resolver) AddSheet(s *Sheet) {
	r.author = append(r.author, s)
}

// AddDocumentSheets parses every <style> element under root and returns
// how many were found.
func (r *Resolver) AddDocumentSheets(root *html.Node) int {
	count := 0
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "style" {
			var sb strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					sb.WriteString(c.Data)
				}
			}
			r.AddSheet(ParseSheet(sb.String()))
			count++
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return count
}

// Resolve computes the style of n given the parent's style (nil for the root).
func (r *Resolver) Resolve(n *html.Node, parent *Style) *Style {
	s := r.base(parent)
	if n.Type != html.ElementNode {
		return s
	}

	decls := r.cascade(n)
	parentFont := r.rootFontSize
	if parent != nil {
		parentFont = parent.FontSize
	}

	// font-size first: em lengths elsewhere depend on it.
	if v, ok := decls["font-size"]; ok {
		if size, err := r.fontSize(v, parentFont); err == nil {
			s.FontSize = size
		} else {
			r.logger.Debug("Ignoring font-size.", zap.String("value", v), zap.Error(err))
		}
		delete(decls, "font-size")
	}

	props := make([]string, 0, len(decls))
	for p := range decls {
		props = append(props, p)
	}
	sort.Strings(props)
	for _, p := range props {
		if err := r.apply(s, p, decls[p], parent); err != nil {
			r.logger.Debug("Ignoring declaration.",
				zap.String("element", n.Data),
				zap.String("property", p),
				zap.String("value", decls[p]),
				zap.Error(err))
		}
	}

	zeroHiddenBorders(s)
	return s
}

// base starts a style from initial values plus inherited properties.
func (r *Resolver) base(parent *Style) *Style {
	s := New()
	s.dpi = r.dpi
	s.rootFontSize = r.rootFontSize
	s.FontSize = r.rootFontSize
	if parent != nil {
		s.FontSize = parent.FontSize
		s.WhiteSpace = parent.WhiteSpace
		s.Color = parent.Color
		s.ListStyle = parent.ListStyle
	}
	return s
}

// cascade returns the winning value of every property declared for n.
func (r *Resolver) cascade(n *html.Node) map[string]string {
	var ranked []rankedDeclaration
	order := 0
	add := func(d Declaration, o origin, a, b, c int) {
		for _, ld := range expandShorthand(d) {
			ranked = append(ranked, rankedDeclaration{decl: ld, origin: o, a: a, b: b, c: c, order: order})
			order++
		}
	}

	collect := func(sheet *Sheet, o origin) {
		for _, rule := range sheet.Rules {
			best, matched := -1, false
			var ba, bb, bc int
			for _, sel := range rule.Selectors {
				if !matches(n, sel) {
					continue
				}
				a, b, c := sel.Specificity()
				if score := a*10000 + b*100 + c; score > best {
					best, ba, bb, bc, matched = score, a, b, c, true
				}
			}
			if matched {
				for _, d := range rule.Declarations {
					add(d, o, ba, bb, bc)
				}
			}
		}
	}

	collect(r.userAgent, originUserAgent)
	for _, sheet := range r.author {
		collect(sheet, originAuthor)
	}
	for _, attr := range n.Attr {
		if attr.Key == "style" {
			for _, d := range ParseDeclarations(attr.Val) {
				add(d, originInline, 1, 0, 0)
			}
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		d1, d2 := ranked[i], ranked[j]
		if p1, p2 := d1.priority(), d2.priority(); p1 != p2 {
			return p1 < p2
		}
		if d1.a != d2.a {
			return d1.a < d2.a
		}
		if d1.b != d2.b {
			return d1.b < d2.b
		}
		if d1.c != d2.c {
			return d1.c < d2.c
		}
		return d1.order < d2.order
	})

	out := make(map[string]string, len(ranked))
	for _, d := range ranked {
		out[d.decl.Property] = d.decl.Value
	}
	return out
}

func (r *Resolver) fontSize(v string, parentFont float64) (float64, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "inherit" {
		return parentFont, nil
	}
	if pt, ok := fontSizeKeywords[v]; ok {
		return pt, nil
	}
	l, err := ParseLength(v)
	if err != nil {
		return 0, err
	}
	switch l.Unit {
	case UnitEm:
		return l.Value * parentFont, nil
	case UnitPercent:
		return l.Value / 100 * parentFont, nil
	case UnitEx:
		return l.Value * parentFont / 2, nil
	case UnitRem:
		return l.Value * r.rootFontSize, nil
	}
	pt, ok := l.toPt(geom.None(), parentFont, r.rootFontSize, r.dpi)
	if !ok {
		return 0, fmt.Errorf("%w: font-size %q", ErrInvalidLength, v)
	}
	return pt, nil
}

func (r *Resolver) apply(s *Style, prop, val string, parent *Style) error {
	lower := strings.ToLower(val)
	if lower == "inherit" {
		if parent == nil {
			return nil
		}
		return inherit(s, prop, parent)
	}

	if side, ok := sideProperty(prop, "margin-", ""); ok {
		return setLength(&s.Margin, side, val)
	}
	if side, ok := sideProperty(prop, "padding-", ""); ok {
		return setLength(&s.Padding, side, val)
	}
	if side, ok := sideProperty(prop, "border-", "-width"); ok {
		return setLength(&s.BorderWidth, side, val)
	}
	if side, ok := sideProperty(prop, "border-", "-style"); ok {
		setBorderStyle(&s.BorderStyle, side, lower)
		return nil
	}
	if side, ok := sideProperty(prop, "", ""); ok {
		return setLength(&s.Offsets, side, val)
	}

	switch prop {
	case "display":
		s.Display = lower
	case "position":
		s.Position = lower
	case "float":
		s.Float = lower
	case "white-space":
		s.WhiteSpace = lower
	case "list-style-type", "list-style":
		s.ListStyle = lower
	case "width", "height":
		l, err := ParseLength(val)
		if err != nil {
			return err
		}
		if prop == "width" {
			s.Width = l
		} else {
			s.Height = l
		}
	case "opacity":
		o, err := ParseNumber(lower)
		if err != nil {
			return fmt.Errorf("opacity: %w", err)
		}
		s.Opacity = clamp(o, 0, 1)
	case "color", "background-color", "background", "border-color":
		c, ok := ParseColor(strings.Fields(lower)[0])
		if !ok {
			return fmt.Errorf("unknown color %q", val)
		}
		switch prop {
		case "color":
			s.Color = c
		case "border-color":
			s.BorderColor = c
		default:
			s.Background = c
		}
	default:
		return fmt.Errorf("unsupported property")
	}
	return nil
}

func inherit(s *Style, prop string, parent *Style) error {
	switch prop {
	case "display":
		s.Display = parent.Display
	case "position":
		s.Position = parent.Position
	case "white-space":
		s.WhiteSpace = parent.WhiteSpace
	case "color":
		s.Color = parent.Color
	case "width":
		s.Width = parent.Width
	case "height":
		s.Height = parent.Height
	case "opacity":
		s.Opacity = parent.Opacity
	default:
		return fmt.Errorf("inherit not supported")
	}
	return nil
}

// sideProperty matches prefix+{top,right,bottom,left}+suffix.
func sideProperty(prop, prefix, suffix string) (Side, bool) {
	if len(prop) < len(prefix)+len(suffix) || !strings.HasPrefix(prop, prefix) || !strings.HasSuffix(prop, suffix) {
		return 0, false
	}
	switch prop[len(prefix) : len(prop)-len(suffix)] {
	case "top":
		return Top, true
	case "right":
		return Right, true
	case "bottom":
		return Bottom, true
	case "left":
		return Left, true
	}
	return 0, false
}

func setLength(sides *Sides, side Side, val string) error {
	l, err := ParseLength(val)
	if err != nil {
		return err
	}
	sides.Set(side, l)
	return nil
}

func setBorderStyle(b *BorderStyles, side Side, v string) {
	switch side {
	case Top:
		b.Top = v
	case Right:
		b.Right = v
	case Bottom:
		b.Bottom = v
	default:
		b.Left = v
	}
}

// zeroHiddenBorders applies the computed-value rule: a border whose style
// is none or hidden has zero width.
func zeroHiddenBorders(s *Style) {
	styles := [4]string{s.BorderStyle.Top, s.BorderStyle.Right, s.BorderStyle.Bottom, s.BorderStyle.Left}
	for i, st := range styles {
		if st == "none" || st == "hidden" {
			s.BorderWidth.Set(Side(i), Pt(0))
		}
	}
}

// expandShorthand turns one declaration into its longhands.
func expandShorthand(d Declaration) []Declaration {
	longhands := func(names [4]string, values [4]string) []Declaration {
		out := make([]Declaration, 4)
		for i := range names {
			out[i] = Declaration{Property: names[i], Value: values[i], Important: d.Important}
		}
		return out
	}
	sides := func(prefix, suffix string) [4]string {
		return [4]string{prefix + "top" + suffix, prefix + "right" + suffix, prefix + "bottom" + suffix, prefix + "left" + suffix}
	}

	switch d.Property {
	case "margin":
		return longhands(sides("margin-", ""), expand1To4(d.Value))
	case "padding":
		return longhands(sides("padding-", ""), expand1To4(d.Value))
	case "border-width":
		return longhands(sides("border-", "-width"), expand1To4(d.Value))
	case "border-style":
		return longhands(sides("border-", "-style"), expand1To4(d.Value))
	case "border", "border-top", "border-right", "border-bottom", "border-left":
		width, styleVal, color := splitBorder(d.Value)
		names := []string{"top", "right", "bottom", "left"}
		if d.Property != "border" {
			names = []string{strings.TrimPrefix(d.Property, "border-")}
		}
		var out []Declaration
		for _, side := range names {
			out = append(out,
				Declaration{Property: "border-" + side + "-width", Value: width, Important: d.Important},
				Declaration{Property: "border-" + side + "-style", Value: styleVal, Important: d.Important})
		}
		if color != "" {
			out = append(out, Declaration{Property: "border-color", Value: color, Important: d.Important})
		}
		return out
	}
	return []Declaration{d}
}

func expand1To4(v string) [4]string {
	parts := strings.Fields(v)
	switch len(parts) {
	case 1:
		return [4]string{parts[0], parts[0], parts[0], parts[0]}
	case 2:
		return [4]string{parts[0], parts[1], parts[0], parts[1]}
	case 3:
		return [4]string{parts[0], parts[1], parts[2], parts[1]}
	case 4:
		return [4]string{parts[0], parts[1], parts[2], parts[3]}
	}
	// Leave the longhands unparsable so apply reports them.
	return [4]string{v, v, v, v}
}

var borderStyleKeywords = map[string]bool{
	"none": true, "hidden": true, "solid": true, "dashed": true,
	"dotted": true, "double": true, "groove": true, "ridge": true,
	"inset": true, "outset": true,
}

func splitBorder(v string) (width, styleVal, color string) {
	width, styleVal = "medium", "none"
	for _, part := range strings.Fields(strings.ToLower(v)) {
		switch {
		case borderStyleKeywords[part]:
			styleVal = part
		case part == "thin" || part == "medium" || part == "thick":
			width = part
		default:
			if _, err := ParseLength(part); err == nil {
				width = part
			} else if _, ok := ParseColor(part); ok {
				color = part
			}
		}
	}
	return width, styleVal, color
}

// -- Selector Matching --

func matches(n *html.Node, sel Selector) bool {
	if n.Type != html.ElementNode || len(sel.Parts) == 0 {
		return false
	}
	return matchFrom(n, sel.Parts, len(sel.Parts)-1)
}

// matchFrom matches parts[:i+1] right to left, with parts[i] against n.
func matchFrom(n *html.Node, parts []Compound, i int) bool {
	if !matchCompound(n, parts[i]) {
		return false
	}
	if i == 0 {
		return true
	}
	switch parts[i].Combinator {
	case CombinatorChild:
		p := n.Parent
		return p != nil && p.Type == html.ElementNode && matchFrom(p, parts, i-1)
	default:
		for p := n.Parent; p != nil && p.Type == html.ElementNode; p = p.Parent {
			if matchFrom(p, parts, i-1) {
				return true
			}
		}
		return false
	}
}

func matchCompound(n *html.Node, c Compound) bool {
	if c.Tag != "" && c.Tag != "*" && !strings.EqualFold(c.Tag, n.Data) {
		return false
	}
	if c.ID != "" && attr(n, "id") != c.ID {
		return false
	}
	if len(c.Classes) > 0 {
		have := strings.Fields(attr(n, "class"))
		for _, want := range c.Classes {
			if !slices.Contains(have, want) {
				return false
			}
		}
	}
	return true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
