package placeholder

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAlternatives(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     map[string][]string
	}{
		{
			name:     "bare placeholders",
			template: "%year/%month/%day",
			want: map[string][]string{
				"%year":  {"%year"},
				"%month": {"%month"},
				"%day":   {"%day"},
			},
		},
		{
			name:     "fallback group",
			template: "{%city|%country|No Place}",
			want: map[string][]string{
				"{%city|%country|No Place}": {"%city", "%country", "No Place"},
			},
		},
		{
			name:     "trailing separator yields empty literal",
			template: "{%camera_brand|}",
			want: map[string][]string{
				"{%camera_brand|}": {"%camera_brand", ""},
			},
		},
		{
			name:     "unterminated group runs to end",
			template: "a/{%city|x",
			want: map[string][]string{
				"{%city|x": {"%city", "x"},
			},
		},
		{
			name:     "placeholder stops at non word character",
			template: "%year-%month",
			want: map[string][]string{
				"%year":  {"%year"},
				"%month": {"%month"},
			},
		},
		{
			name:     "identifiers take unicode letters",
			template: "%villeé/{%año|%city}-x",
			want: map[string][]string{
				"%villeé":      {"%villeé"},
				"{%año|%city}": {"%año", "%city"},
			},
		},
		{
			name:     "literal run next to placeholder in a group",
			template: "{%city, here|none}",
			want: map[string][]string{
				"{%city, here|none}": {"%city", ", here", "none"},
			},
		},
		{
			name:     "nested braces are literal text",
			template: "{a{b|c}d|%year}",
			want: map[string][]string{
				"{a{b|c}d|%year}": {"a{b|c}d", "%year"},
			},
		},
		{
			name:     "lone percent is literal",
			template: "100%/%year",
			want: map[string][]string{
				"%year": {"%year"},
			},
		},
		{
			name:     "no placeholders",
			template: "plain/path",
			want:     map[string][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.template).Alternatives()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSharesIdenticalGroups(t *testing.T) {
	tmpl := Parse("%year/%month/%year_%year")

	require.Len(t, tmpl.Groups(), 3)

	var year []*Group
	for _, s := range tmpl.Spans() {
		if s.Group != nil && s.Text == "%year" {
			year = append(year, s.Group)
		}
	}
	// "%year_" is a different identifier.
	require.Len(t, year, 2)
	assert.Same(t, year[0], year[1])
}

func TestParseClassifiesAlternatives(t *testing.T) {
	tmpl := Parse("{%Year|%year|Unknown}")
	g, ok := tmpl.Lookup("{%Year|%year|Unknown}")
	require.True(t, ok)

	kinds := make([]Kind, 0, len(g.Alternatives))
	for _, alt := range g.Alternatives {
		kinds = append(kinds, alt.Kind)
	}
	assert.Equal(t, []Kind{KindUnknown, KindYear, KindLiteral}, kinds)
	assert.Equal(t, KindYear, g.Fallback().Kind)
}

func TestSpansReconstructTemplate(t *testing.T) {
	templates := []string{
		"",
		"%",
		"{",
		"}",
		"|",
		"{}",
		"{|}",
		"{{}",
		"%year%month",
		"%original_folder/{%city|%country|No Place}/%original_filename",
		"a{%city|x",
		"weird }|{ text %% and %_",
	}

	rng := rand.New(rand.NewSource(42))
	alphabet := []string{"%", "{", "}", "|", "a", "_", "/", " ", "%year", "%city", "é"}
	for i := 0; i < 500; i++ {
		var b strings.Builder
		for n := rng.Intn(12); n > 0; n-- {
			b.WriteString(alphabet[rng.Intn(len(alphabet))])
		}
		templates = append(templates, b.String())
	}

	for _, template := range templates {
		tmpl := Parse(template)

		var b strings.Builder
		prev := 0
		for _, s := range tmpl.Spans() {
			require.Equal(t, prev, s.Start, "spans must be contiguous for %q", template)
			require.Equal(t, template[s.Start:s.End], s.Text)
			b.WriteString(s.Text)
			prev = s.End
		}
		require.Equal(t, template, b.String())
		require.Equal(t, template, tmpl.Reconstruct(func(g *Group) string { return g.Raw }))
	}
}

func TestParseGroupRawIsStable(t *testing.T) {
	tmpl := Parse("%year/{%city|%country|}/{%camera_model, %camera_brand|none/{%day")

	for _, g := range tmpl.Groups() {
		again := Parse(g.Raw)
		require.Len(t, again.Groups(), 1, g.Raw)
		assert.Equal(t, g.Alternatives, again.Groups()[0].Alternatives, g.Raw)
	}
}
