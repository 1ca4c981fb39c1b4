// Package template implements the tag pipeline applied to document
// templates: token extraction, value substitution and final markup
// post-processing.
package template

import "regexp"

// Tokens are symbolic markers embedded in the raw template: the @ sigil
// followed by word characters, e.g. @razao_social_empresa.
var tokenRE = regexp.MustCompile(`@\w+`)

// Extract returns the distinct set of tokens present in the raw
// template. Order is not significant.
func Extract(raw string) []string {
	seen := map[string]bool{}
	var tokens []string
	for _, tok := range tokenRE.FindAllString(raw, -1) {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		tokens = append(tokens, tok)
	}
	return tokens
}
