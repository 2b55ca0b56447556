// Package htmlutil extracts readable text and links out of dom trees.
package htmlutil

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"chatbot-backend/lib/dom"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("chatbot.lib.htmlutil")

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) || unicode.IsSpace(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText drops non-printable characters, trims and collapses runs of
// whitespace into a single space.
func CleanText(s string) string {
	s = removeNonPrintable(s)
	s = strings.TrimSpace(s)
	return innerWhitespace.ReplaceAllString(s, " ")
}

// Text is the cleaned text content of `n`.
func Text(n dom.Node) string {
	return CleanText(dom.TextContent(n))
}

type Anchor struct {
	Name string
	Href string
}

// Anchors returns every <a href> under `root` in document order. Relative
// hrefs are resolved against `base` when it is not nil, hrefs that fail to
// parse are skipped.
func Anchors(ctx context.Context, base *url.URL, root ...dom.Node) []Anchor {
	_, span := tracer.Start(ctx, "Anchors")
	defer span.End()

	anchors := []Anchor{}
	var walk func(n dom.Node)
	walk = func(n dom.Node) {
		el, ok := n.(*dom.Element)
		if !ok {
			return
		}
		if el.Tag == "a" {
			if href, ok := el.Attr("href"); ok {
				if anchor, ok := toAnchor(span, base, el, href); ok {
					anchors = append(anchors, anchor)
				}
			}
		}
		for _, child := range el.Children {
			walk(child)
		}
	}
	for _, n := range root {
		walk(n)
	}
	return anchors
}

func toAnchor(span trace.Span, base *url.URL, el *dom.Element, href string) (Anchor, bool) {
	link, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "got error while parsing url")
		return Anchor{}, false
	}
	if base != nil {
		link = base.ResolveReference(link)
	}

	anchor := Anchor{
		Name: Text(el),
		Href: link.String(),
	}
	span.AddEvent("anchor", trace.WithAttributes(
		attribute.String("name", anchor.Name),
		attribute.String("url", anchor.Href),
	))
	return anchor, true
}
