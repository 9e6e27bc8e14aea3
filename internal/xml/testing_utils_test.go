package xml

import (
	"regexp"
	"strings"
	"testing"

	"github.com/beevik/etree"
)

var (
	declRe       = regexp.MustCompile(`<\?xml[^>]*\?>`)
	interTagRe   = regexp.MustCompile(`>\s+<`)
	selfCloseRe  = regexp.MustCompile(`\s+/>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// normalizeXML removes whitespace differences and the XML declaration for
// test comparisons. Declaration content is compared separately where it
// matters.
func normalizeXML(s string) string {
	s = declRe.ReplaceAllString(s, "")
	s = interTagRe.ReplaceAllString(s, "><")
	s = selfCloseRe.ReplaceAllString(s, "/>")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func mustParse(t *testing.T, s string) *etree.Document {
	t.Helper()
	if !strings.HasPrefix(s, `<?xml version="1.0" encoding="utf-8"?>`) {
		t.Fatalf("missing XML declaration:\n%s", s)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromString(s); err != nil {
		t.Fatalf("invalid XML: %v\n%s", err, s)
	}
	if doc.Root() == nil {
		t.Fatalf("no root element:\n%s", s)
	}
	return doc
}
