package template

import (
	"regexp"
	"strings"
)

// styleMarker identifies the injected block so re-processing an
// already-processed document does not duplicate it.
const styleMarker = "acervus-print-styles"

const printStyles = `<style id="` + styleMarker + `">
.text-left { text-align: left; }
.text-center { text-align: center; }
.text-right { text-align: right; }
.text-justify { text-align: justify; }
.page-break { page-break-after: always; }
img { max-width: 100%; }
</style>`

var (
	imgStyleRE  = regexp.MustCompile(`(?is)(<img\b[^>]*?)\s+style\s*=\s*(?:"[^"]*"|'[^']*')`)
	headCloseRE = regexp.MustCompile(`(?i)</head>`)
)

// PostProcess strips per-image inline style overrides and injects the
// fixed presentation stylesheet, immediately before the closing head
// tag when one exists, otherwise at the document end.
func PostProcess(markup string) string {
	out := imgStyleRE.ReplaceAllString(markup, "$1")

	if strings.Contains(out, styleMarker) {
		return out
	}

	if loc := headCloseRE.FindStringIndex(out); loc != nil {
		return out[:loc[0]] + printStyles + "\n" + out[loc[0]:]
	}
	return out + "\n" + printStyles
}
