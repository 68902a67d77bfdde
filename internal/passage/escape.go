package passage

import (
	"encoding/xml"
	"strings"
)

// escapeText and escapeAttr lean on encoding/xml's escaper: none of the
// pack's XML libraries expose a generic "serialise an arbitrary
// in-memory tree" entry point (xmlquery/xpath are read/query oriented),
// so this one corner of the reconstructor is stdlib.
func escapeText(b *strings.Builder, s string) {
	_ = xml.EscapeText(b, []byte(s))
}

func escapeAttr(b *strings.Builder, s string) {
	_ = xml.EscapeText(b, []byte(s))
}
