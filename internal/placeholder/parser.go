package placeholder

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Alternative is one candidate inside a placeholder group.
type Alternative struct {
	// Text is either a percent placeholder such as "%year" or literal text.
	Text string

	// Kind is the classification of Text.
	Kind Kind
}

// IsLiteral reports whether the alternative is literal fallback text.
func (a Alternative) IsLiteral() bool {
	return a.Kind == KindLiteral
}

// Group is a placeholder occurrence: either a bare %name or a {...} group.
//
// Groups with identical raw text are shared, so a template that mentions
// "%year" twice holds a single *Group for both occurrences.
type Group struct {
	// Raw is the exact substring of the template.
	Raw string

	// Alternatives are ordered as written.
	Alternatives []Alternative
}

// Fallback returns the first alternative whose kind is registered, or the
// first alternative when none is. Its label names the group when nothing
// resolves.
func (g *Group) Fallback() Alternative {
	for _, alt := range g.Alternatives {
		if alt.Kind != KindUnknown && alt.Kind != KindLiteral {
			return alt
		}
	}
	if len(g.Alternatives) == 0 {
		return Alternative{Kind: KindUnknown}
	}
	return g.Alternatives[0]
}

// Span is a contiguous slice of the template. Group is nil for literal text.
type Span struct {
	Start, End int
	Text       string
	Group      *Group
}

// Template is a parsed path template.
type Template struct {
	raw    string
	spans  []Span
	groups []*Group
	index  map[string]*Group
}

// Parse splits a template into literal spans and placeholder groups.
func Parse(template string) *Template {
	p := &parser{src: template}
	t := &Template{raw: template, index: make(map[string]*Group)}

	literalStart := 0
	flush := func(end int) {
		if end > literalStart {
			t.spans = append(t.spans, Span{Start: literalStart, End: end, Text: template[literalStart:end]})
		}
	}

	for p.pos < len(p.src) {
		start := p.pos
		var alts []Alternative

		switch p.src[p.pos] {
		case '%':
			name := p.word(p.pos + 1)
			if name == "" {
				p.pos++
				continue
			}
			p.pos += 1 + len(name)
			alts = []Alternative{newAlternative("%" + name)}
		case '{':
			alts = p.group()
		default:
			p.pos++
			continue
		}

		flush(start)
		raw := template[start:p.pos]
		t.spans = append(t.spans, Span{Start: start, End: p.pos, Text: raw, Group: t.intern(raw, alts)})
		literalStart = p.pos
	}
	flush(len(template))

	return t
}

func (t *Template) intern(raw string, alts []Alternative) *Group {
	if g, ok := t.index[raw]; ok {
		return g
	}
	g := &Group{Raw: raw, Alternatives: alts}
	t.index[raw] = g
	t.groups = append(t.groups, g)
	return g
}

// String returns the template text as given to Parse.
func (t *Template) String() string {
	return t.raw
}

// Spans returns the template as an ordered list of spans covering it exactly.
func (t *Template) Spans() []Span {
	return t.spans
}

// Groups returns the distinct placeholder groups in order of first occurrence.
func (t *Template) Groups() []*Group {
	return t.groups
}

// Lookup returns the group parsed from the given raw substring.
func (t *Template) Lookup(raw string) (*Group, bool) {
	g, ok := t.index[raw]
	return g, ok
}

// Alternatives maps each distinct raw placeholder substring to the text of
// its ordered alternatives.
func (t *Template) Alternatives() map[string][]string {
	out := make(map[string][]string, len(t.groups))
	for _, g := range t.groups {
		texts := make([]string, len(g.Alternatives))
		for i, alt := range g.Alternatives {
			texts[i] = alt.Text
		}
		out[g.Raw] = texts
	}
	return out
}

// Needs reports which metadata providers the template uses.
func (t *Template) Needs() Requirements {
	var r Requirements
	for _, g := range t.groups {
		for _, alt := range g.Alternatives {
			r = r.with(alt.Kind)
		}
	}
	return r
}

// Reconstruct rebuilds the template, replacing every group by the value
// render returns for it. Literal spans are copied unchanged.
func (t *Template) Reconstruct(render func(*Group) string) string {
	var b strings.Builder
	b.Grow(len(t.raw))
	for _, s := range t.spans {
		if s.Group == nil {
			b.WriteString(s.Text)
			continue
		}
		b.WriteString(render(s.Group))
	}
	return b.String()
}

type parser struct {
	src string
	pos int
}

// word returns the identifier starting at i, possibly empty.
func (p *parser) word(i int) string {
	return p.src[i:wordEnd(p.src, i)]
}

// group consumes a {...} group starting at p.pos. Nested braces are kept as
// literal text and only '|' at the outer level separates alternatives.
func (p *parser) group() []Alternative {
	p.pos++ // '{'
	var (
		alts    []Alternative
		segment = p.pos
		depth   = 0
	)
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				alts = append(alts, splitSegment(p.src[segment:p.pos])...)
				p.pos++
				return alts
			}
			depth--
		case '|':
			if depth == 0 {
				alts = append(alts, splitSegment(p.src[segment:p.pos])...)
				segment = p.pos + 1
			}
		}
		p.pos++
	}
	// Unterminated: the group extends to the end of the template.
	return append(alts, splitSegment(p.src[segment:])...)
}

// splitSegment turns the text between two separators into alternatives.
// Each %name becomes its own alternative and every run of other characters
// becomes a literal one. An empty segment is an empty literal.
func splitSegment(seg string) []Alternative {
	if seg == "" {
		return []Alternative{{Text: "", Kind: KindLiteral}}
	}

	var alts []Alternative
	literal := 0
	i := 0
	for i < len(seg) {
		if seg[i] != '%' {
			i++
			continue
		}
		j := wordEnd(seg, i+1)
		if j == i+1 {
			i++
			continue
		}
		if i > literal {
			alts = append(alts, Alternative{Text: seg[literal:i], Kind: KindLiteral})
		}
		alts = append(alts, newAlternative(seg[i:j]))
		i = j
		literal = j
	}
	if literal < len(seg) {
		alts = append(alts, Alternative{Text: seg[literal:], Kind: KindLiteral})
	}
	return alts
}

func newAlternative(text string) Alternative {
	return Alternative{Text: text, Kind: Classify(text)}
}

// wordEnd returns the end of the run of letters, digits and underscores
// starting at i. Letters and digits are any Unicode ones.
func wordEnd(s string, i int) int {
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			break
		}
		i += size
	}
	return i
}
