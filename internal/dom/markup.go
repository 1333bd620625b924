package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// MarkupVisitor receives the pieces of tokenized markup in document order.
// Nil callbacks are skipped.
type MarkupVisitor struct {
	Text  func(text string) // entity-decoded character data
	Start func(tag string)  // start and self-closing tags, lower case
	End   func(tag string)  // end tags, lower case
}

// WalkMarkup tokenizes markup and reports its text and tags to v. An
// unterminated tag at the end of the input is reported as text.
func WalkMarkup(markup string, v MarkupVisitor) {
	z := html.NewTokenizer(strings.NewReader(markup))
	consumed := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if rest := markup[min(consumed, len(markup)):]; rest != "" && v.Text != nil {
				v.Text(html.UnescapeString(rest))
			}
			return
		}
		consumed += len(z.Raw())

		switch tt {
		case html.TextToken:
			if v.Text != nil {
				v.Text(string(z.Text()))
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			if v.Start != nil {
				name, _ := z.TagName()
				v.Start(string(name))
			}
		case html.EndTagToken:
			if v.End != nil {
				name, _ := z.TagName()
				v.End(string(name))
			}
		}
	}
}

// MarkupText returns the text of markup with tags removed and entities
// decoded.
func MarkupText(markup string) string {
	if !strings.ContainsAny(markup, "<&") {
		return markup
	}
	var b strings.Builder
	WalkMarkup(markup, MarkupVisitor{
		Text: func(text string) { b.WriteString(text) },
	})
	return b.String()
}
