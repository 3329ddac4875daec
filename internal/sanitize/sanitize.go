// Package sanitize neutralizes markup in free-text fields before they are
// echoed to a client. Allow-listed tags survive with their allow-listed
// attributes; everything else is reduced to inert, entity-escaped text.
package sanitize

import (
	"strings"

	"golang.org/x/net/html"
)

// allowedTags maps permitted tag names to their permitted attributes.
// Event-handler attributes are never listed, so onerror and friends are
// dropped while the tag itself survives.
var allowedTags = map[string]map[string]bool{
	"a":          {"href": true, "title": true, "target": true},
	"abbr":       {"title": true},
	"b":          {},
	"blockquote": {"cite": true},
	"br":         {},
	"code":       {},
	"em":         {},
	"h1":         {},
	"h2":         {},
	"h3":         {},
	"h4":         {},
	"h5":         {},
	"h6":         {},
	"i":          {},
	"img":        {"src": true, "alt": true, "title": true, "width": true, "height": true},
	"li":         {},
	"ol":         {},
	"p":          {},
	"pre":        {},
	"strong":     {},
	"ul":         {},
}

// textEscaper escapes only the characters that can open markup. Quotes are
// left alone so sanitized text round-trips byte-identically.
var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Clean renders s inert in an HTML context. Tags outside the allow-list
// become entity-escaped remnants of their source text; the text between
// them survives, also escaped. Clean is a pure function and idempotent:
// the tokenizer decodes entities that a previous pass produced, and the
// escape step recreates them unchanged.
func Clean(s string) string {
	if s == "" {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// io.EOF for string input; the scan is done either way.
			return b.String()
		}

		raw := string(z.Raw())
		switch tt {
		case html.TextToken:
			b.WriteString(textEscaper.Replace(z.Token().Data))
		case html.StartTagToken, html.SelfClosingTagToken:
			writeStartTag(&b, z.Token(), raw)
		case html.EndTagToken:
			writeEndTag(&b, z.Token(), raw)
		case html.CommentToken, html.DoctypeToken:
			// dropped
		}
	}
}

func writeStartTag(b *strings.Builder, t html.Token, raw string) {
	attrs, ok := allowedTags[t.Data]
	if !ok {
		b.WriteString(textEscaper.Replace(raw))
		return
	}

	b.WriteByte('<')
	b.WriteString(t.Data)
	for _, a := range t.Attr {
		if !attrs[a.Key] {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a.Val))
		b.WriteByte('"')
	}
	b.WriteByte('>')
}

func writeEndTag(b *strings.Builder, t html.Token, raw string) {
	if _, ok := allowedTags[t.Data]; !ok {
		b.WriteString(textEscaper.Replace(raw))
		return
	}
	b.WriteString("</")
	b.WriteString(t.Data)
	b.WriteByte('>')
}
