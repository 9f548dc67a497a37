package format

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

var handlePool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFC,
			runes.Remove(runes.In(unicode.Cf)), // zero width joiners, BOM
			width.Fold,
		)
	},
}

// Handle cleans a profile handle before it is cached as a display name.
// Invalid UTF-8 and format characters are dropped, fullwidth forms folded and
// whitespace collapsed. Case is kept
func Handle(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := handlePool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	handlePool.Put(tr)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(out), " ")
}
