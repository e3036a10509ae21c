// Package placeholder parses path templates and classifies their placeholders.
//
// A template is plain text with two kinds of markers:
//
//   - %name: a percent placeholder. The name is the longest run of ASCII
//     letters, digits and underscores following the percent sign.
//   - {a|b|c}: a fallback group. Alternatives are tried left to right by
//     the formatter and the first one that resolves wins. An alternative is
//     either a percent placeholder or literal text, which always resolves to
//     itself.
//
// Parsing never fails. Text that does not form a marker is kept as literal
// text, an unterminated group runs to the end of the template, and the
// spans of a parsed template always concatenate back to the input.
//
// Example:
//
//	t := placeholder.Parse("%year/{%city|%country|No Place}/%original_filename")
//	for _, g := range t.Groups() {
//	    fmt.Println(g.Raw, len(g.Alternatives))
//	}
//	// %year 1
//	// {%city|%country|No Place} 3
//	// %original_filename 1
package placeholder
