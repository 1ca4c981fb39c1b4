package template

import (
	"regexp"
	"sort"
	"strings"

	"github.com/nanpeixoto/acervus/internal/domain"
	"github.com/nanpeixoto/acervus/internal/format"
)

// Substitute replaces every occurrence of each extracted token that has
// an active definition and whose entity kind is present in the context.
// Blank values become the sentinel; tokens without a definition or
// whose entity did not resolve are left untouched, so generation is
// always best-effort.
//
// Replacement is a single pass over the original markup: substituted
// values are never re-scanned, so a value that happens to contain a
// token (an e-mail address, say) cannot be corrupted by a later
// replacement. Within the pass, longer tokens win: when one token is a
// textual prefix of another, catalog order must not decide which
// matches.
func Substitute(raw string, tokens []string, defs []domain.TagDefinition, ctx domain.DataContext) string {
	byToken := make(map[string]domain.TagDefinition, len(defs))
	for _, d := range defs {
		if d.Active {
			byToken[d.Token] = d
		}
	}

	values := make(map[string]string, len(tokens))
	for _, tok := range tokens {
		def, ok := byToken[tok]
		if !ok {
			continue
		}
		snapshot, ok := ctx[def.EntityKind]
		if !ok {
			continue
		}
		value := strings.TrimSpace(snapshot[def.FieldPath])
		if value == "" {
			value = format.Sentinel
		}
		values[tok] = value
	}
	if len(values) == 0 {
		return raw
	}

	ordered := make([]string, 0, len(values))
	for tok := range values {
		ordered = append(ordered, tok)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if len(ordered[i]) != len(ordered[j]) {
			return len(ordered[i]) > len(ordered[j])
		}
		return ordered[i] < ordered[j]
	})

	// Alternation tries branches in order, so the longest-first sort
	// above is what makes the longer token win at a shared prefix.
	quoted := make([]string, 0, len(ordered))
	for _, tok := range ordered {
		quoted = append(quoted, regexp.QuoteMeta(tok))
	}
	re := regexp.MustCompile(strings.Join(quoted, "|"))

	return re.ReplaceAllStringFunc(raw, func(m string) string {
		return values[m]
	})
}
