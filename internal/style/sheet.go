// internal/style/sheet.go
package style

import (
	"strings"
)

// Declaration is one property/value pair, e.g. "margin-left: 10pt".
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// Rule applies its declarations to every element matched by one of its selectors.
type Rule struct {
	Selectors    []Selector
	Declarations []Declaration
}

// Sheet is a parsed stylesheet.
type Sheet struct {
	Rules []Rule
}

// Combinator joins two compound selectors.
type Combinator int

const (
	CombinatorNone Combinator = iota
	CombinatorDescendant
	CombinatorChild
)

// Compound is a run of simple selectors with no combinator, e.g. div#main.note.
type Compound struct {
	Combinator Combinator // relation to the compound on its left
	Tag        string     // "" or "*" matches any element
	ID         string
	Classes    []string
}

func (c Compound) empty() bool {
	return c.Tag == "" && c.ID == "" && len(c.Classes) == 0
}

// Selector is a complex selector: compounds from left to right.
type Selector struct {
	Parts []Compound
}

// Specificity returns the (ids, classes, types) triple.
func (s Selector) Specificity() (a, b, c int) {
	for _, p := range s.Parts {
		if p.ID != "" {
			a++
		}
		b += len(p.Classes)
		if p.Tag != "" && p.Tag != "*" {
			c++
		}
	}
	return a, b, c
}

// -- Parser --

type sheetParser struct {
	input string
	pos   int
}

// ParseSheet parses CSS source. It is tolerant: unparsable rules and
// at-rules are skipped rather than reported.
func ParseSheet(src string) *Sheet {
	p := &sheetParser{input: src}
	sheet := &Sheet{}
	for {
		p.skipSpaceAndComments()
		if p.eof() {
			break
		}
		if p.peek() == '@' {
			p.skipAtRule()
			continue
		}

		selectors := p.parseSelectors()
		decls, ok := p.parseBlock()
		if !ok {
			continue
		}
		if len(selectors) > 0 && len(decls) > 0 {
			sheet.Rules = append(sheet.Rules, Rule{Selectors: selectors, Declarations: decls})
		}
	}
	return sheet
}

// ParseDeclarations parses the body of a style attribute.
func ParseDeclarations(src string) []Declaration {
	var decls []Declaration
	for _, part := range strings.Split(src, ";") {
		if d, ok := parseDeclaration(part); ok {
			decls = append(decls, d)
		}
	}
	return decls
}

func parseDeclaration(part string) (Declaration, bool) {
	prop, val, found := strings.Cut(part, ":")
	if !found {
		return Declaration{}, false
	}
	prop = strings.ToLower(strings.TrimSpace(prop))
	val = strings.TrimSpace(val)
	important := false
	if strings.HasSuffix(strings.ToLower(val), "!important") {
		important = true
		val = strings.TrimSpace(val[:len(val)-len("!important")])
	}
	if prop == "" || val == "" {
		return Declaration{}, false
	}
	return Declaration{Property: prop, Value: val, Important: important}, true
}

func (p *sheetParser) parseSelectors() []Selector {
	start := p.pos
	p.skipTo('{')
	var out []Selector
	for _, raw := range strings.Split(p.input[start:p.pos], ",") {
		if sel, ok := parseSelector(raw); ok {
			out = append(out, sel)
		}
	}
	return out
}

func parseSelector(raw string) (Selector, bool) {
	var sel Selector
	comb := CombinatorNone
	for _, tok := range strings.Fields(strings.ReplaceAll(raw, ">", " > ")) {
		if tok == ">" {
			comb = CombinatorChild
			continue
		}
		c, ok := parseCompound(tok)
		if !ok {
			return Selector{}, false
		}
		if len(sel.Parts) > 0 && comb == CombinatorNone {
			comb = CombinatorDescendant
		}
		c.Combinator = comb
		sel.Parts = append(sel.Parts, c)
		comb = CombinatorNone
	}
	return sel, len(sel.Parts) > 0
}

func parseCompound(tok string) (Compound, bool) {
	var c Compound
	i := 0
	readIdent := func() string {
		start := i
		for i < len(tok) && isIdentChar(tok[i]) {
			i++
		}
		return tok[start:i]
	}

	if tok[0] == '*' {
		c.Tag = "*"
		i++
	} else if isIdentChar(tok[0]) {
		c.Tag = strings.ToLower(readIdent())
	}
	for i < len(tok) {
		switch tok[i] {
		case '#':
			i++
			c.ID = readIdent()
		case '.':
			i++
			c.Classes = append(c.Classes, readIdent())
		default:
			// pseudo-classes, attribute selectors: unsupported
			return Compound{}, false
		}
	}
	return c, !c.empty()
}

func (p *sheetParser) parseBlock() ([]Declaration, bool) {
	if p.eof() || p.peek() != '{' {
		return nil, false
	}
	p.pos++
	start := p.pos
	p.skipTo('}')
	body := p.input[start:p.pos]
	if !p.eof() {
		p.pos++
	}
	return ParseDeclarations(stripComments(body)), true
}

// -- Lexer-like Helpers --

func (p *sheetParser) eof() bool { return p.pos >= len(p.input) }

func (p *sheetParser) peek() byte { return p.input[p.pos] }

func (p *sheetParser) skipSpaceAndComments() {
	for !p.eof() {
		switch {
		case isSpace(p.peek()):
			p.pos++
		case strings.HasPrefix(p.input[p.pos:], "/*"):
			end := strings.Index(p.input[p.pos+2:], "*/")
			if end < 0 {
				p.pos = len(p.input)
			} else {
				p.pos += end + 4
			}
		default:
			return
		}
	}
}

func (p *sheetParser) skipTo(target byte) {
	for !p.eof() && p.peek() != target {
		p.pos++
	}
}

func (p *sheetParser) skipAtRule() {
	for !p.eof() {
		switch p.peek() {
		case ';':
			p.pos++
			return
		case '{':
			depth := 0
			for !p.eof() {
				switch p.peek() {
				case '{':
					depth++
				case '}':
					depth--
				}
				p.pos++
				if depth == 0 {
					return
				}
			}
			return
		}
		p.pos++
	}
}

func stripComments(s string) string {
	for {
		start := strings.Index(s, "/*")
		if start < 0 {
			return s
		}
		end := strings.Index(s[start+2:], "*/")
		if end < 0 {
			return s[:start]
		}
		s = s[:start] + s[start+2+end+2:]
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f'
}

func isIdentChar(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '_' || ch == '-'
}
