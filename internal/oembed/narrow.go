package oembed

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Narrower extracts the playable element from a provider's html field.
// The default is a plain substring search; providers that nest fragments
// can be handled by swapping in the DOM-based implementation.
type Narrower interface {
	Narrow(html string) (string, bool)
}

// SubstringNarrower returns the span from the first opening iframe tag
// through its closing tag, inclusive. Providers wrap a single iframe in
// optional container markup, so a first-open/first-close scan suffices.
type SubstringNarrower struct{}

// Narrow implements Narrower.
func (SubstringNarrower) Narrow(html string) (string, bool) {
	const openTag, closeTag = "<iframe", "</iframe>"

	start := strings.Index(html, openTag)
	if start < 0 {
		return "", false
	}
	end := strings.Index(html[start:], closeTag)
	if end < 0 {
		return "", false
	}
	return html[start : start+end+len(closeTag)], true
}

// DOMNarrower parses the fragment and returns the first iframe element,
// surviving nested or malformed wrapper markup at the cost of a full parse.
type DOMNarrower struct{}

// Narrow implements Narrower.
func (DOMNarrower) Narrow(html string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}

	sel := doc.Find("iframe").First()
	if sel.Length() == 0 {
		return "", false
	}

	out, err := goquery.OuterHtml(sel)
	if err != nil {
		return "", false
	}
	return out, true
}
