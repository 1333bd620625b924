package ui

import (
	"strings"

	"github.com/muurk/notebook/internal/dom"
)

// blockTags start a new line when rendered as text.
var blockTags = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "header": true,
	"footer": true, "ul": true, "ol": true, "li": true, "pre": true,
	"blockquote": true, "table": true, "tr": true, "br": true, "hr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// lineTags start a line without closing a paragraph.
var lineTags = map[string]bool{"li": true, "tr": true, "br": true}

const bullet = "• "

func endsParagraph(tag string) bool {
	return blockTags[tag] && !lineTags[tag]
}

// PlainText renders an element subtree as terminal text. Block elements are
// separated by a blank line, list items get a bullet on their own line, and
// inline elements run together.
func PlainText(el *dom.Element) string {
	if el == nil {
		return ""
	}
	var b strings.Builder
	writePlain(el, &b)
	return tidy(b.String())
}

func writePlain(el *dom.Element, b *strings.Builder) {
	tag := el.Tag()
	if blockTags[tag] {
		b.WriteByte('\n')
	}
	if tag == "li" {
		b.WriteString(bullet)
	}
	b.WriteString(el.OwnText())
	if m := el.Markup(); m != "" {
		writeMarkup(m, b)
	}
	for _, c := range el.ChildElements() {
		writePlain(c, b)
	}
	if endsParagraph(tag) {
		b.WriteByte('\n')
	}
}

// writeMarkup writes the text of literal markup with the same block rules
// as element trees.
func writeMarkup(markup string, b *strings.Builder) {
	dom.WalkMarkup(markup, dom.MarkupVisitor{
		Text: func(text string) { b.WriteString(text) },
		Start: func(tag string) {
			if blockTags[tag] {
				b.WriteByte('\n')
			}
			if tag == "li" {
				b.WriteString(bullet)
			}
		},
		End: func(tag string) {
			if endsParagraph(tag) {
				b.WriteByte('\n')
			}
		},
	})
}

// tidy trims each line and collapses runs of blank lines into one.
func tidy(s string) string {
	var out []string
	blank := true
	for _, line := range strings.Split(s, "\n") {
		line = strings.Trim(line, " \t")
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
