package completion

import (
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// renderDoc renders a MethodData/Property's Markdown doc string down
// to plain text for an editor's hover/completion payload (SPEC_FULL.md
// §5, additive): blackfriday produces HTML, which is then stripped of
// tags since the doc strings in internal/bindings/table.yaml are
// one-liners with no content worth preserving markup for.
func renderDoc(doc string) string {
	if doc == "" {
		return ""
	}
	html := blackfriday.Run([]byte(doc))
	plain := tagPattern.ReplaceAllString(string(html), "")
	return strings.TrimSpace(plain)
}
