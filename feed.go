package logbook

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// FeedContentType is the media type of the output of RenderFeed.
	FeedContentType = "application/atom+xml"

	// FeedPath is where the feed lives, relative to the blog's base URL.
	FeedPath = "atom.xml"

	feedTitle      = "Entries"
	atomNamespace  = "http://www.w3.org/2005/Atom"
	xmlDeclaration = `<?xml version="1.0" encoding="utf-8"?>` + "\n"
	summaryLength  = 280
)

// bodyEscaper turns a body into text that reads back as the original markup
// inside an XML element. It never re-escapes its own output.
var bodyEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

var summaryPolicy = bluemonday.StrictPolicy()

type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	XMLNS   string      `xml:"xmlns,attr"`
	Title   string      `xml:"title"`
	Link    atomLink    `xml:"link"`
	Updated string      `xml:"updated"`
	ID      string      `xml:"id"`
	Author  atomAuthor  `xml:"author"`
	Entries []atomEntry `xml:"entry"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type atomAuthor struct {
	Name string `xml:"name"`
	URI  string `xml:"uri,omitempty"`
}

type atomEntry struct {
	Title   string       `xml:"title"`
	Link    atomLink     `xml:"link"`
	ID      string       `xml:"id"`
	Updated string       `xml:"updated"`
	Summary *atomSummary `xml:"summary,omitempty"`
	Content atomContent  `xml:"content"`
}

type atomSummary struct {
	Type string `xml:"type,attr"`
	Text string `xml:",chardata"`
}

type atomContent struct {
	Type string `xml:"type,attr"`

	// Body is already escaped with bodyEscaper.
	Body string `xml:",innerxml"`
}

// RenderFeed writes an Atom feed of entries to w, in the order they're
// supplied. The feed's updated time is the time it was rendered.
func (b *Blog) RenderFeed(ctx context.Context, w io.Writer, entries []Entry) error {
	ctx, span := tracer(ctx, b).Start(ctx, "logbook.RenderFeed", trace.WithAttributes(
		attribute.Int("logbook.entries.count", len(entries)),
	))
	defer span.End()

	err := b.renderFeed(ctx, w, entries)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		Logger(ctx).ErrorContext(ctx, "error rendering feed", slog.Any("err", err))
	}
	return err
}

func (b *Blog) renderFeed(ctx context.Context, w io.Writer, entries []Entry) error {
	self := b.URL(FeedPath)
	feed := atomFeed{
		XMLNS:   atomNamespace,
		Title:   feedTitle,
		Link:    atomLink{Href: self, Rel: "self", Type: FeedContentType},
		Updated: ISO8601(b.now(), b.location),
		ID:      self,
		Author:  atomAuthor{Name: b.author, URI: b.authorURI},
		Entries: make([]atomEntry, 0, len(entries)),
	}
	for _, entry := range entries {
		err := entry.Validate()
		if err == nil && entry.UpdatedOn.IsZero() {
			err = fmt.Errorf("invalid entry %q: %w", entry.Title, ErrZeroUpdatedOn)
		}
		if err != nil {
			Logger(ctx).WarnContext(ctx, "can't syndicate entry", entryAttr(entry), slog.Any("err", err))
			return err
		}
		link := b.URL(entry.URL + ".html")
		feed.Entries = append(feed.Entries, atomEntry{
			Title:   entry.Title,
			Link:    atomLink{Href: link, Rel: "alternate", Type: "text/html"},
			ID:      link,
			Updated: ISO8601(entry.UpdatedOn, b.location),
			Summary: summarize(string(entry.Body)),
			Content: atomContent{Type: "html", Body: EscapeFeedContent(string(entry.Body))},
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xmlDeclaration)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "\t")
	if err := enc.Encode(feed); err != nil {
		return fmt.Errorf("error encoding feed: %w", err)
	}
	buf.WriteString("\n")
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("error writing feed: %w", err)
	}
	return nil
}

// EscapeFeedContent escapes &, <, >, and " in body so that it appears as
// text, not markup, inside an XML element. Invalid UTF-8 and characters XML
// doesn't allow are replaced with U+FFFD, as encoding/xml does for text.
func EscapeFeedContent(body string) string {
	return bodyEscaper.Replace(strings.Map(xmlChar, body))
}

// xmlChar maps runes outside the XML 1.0 Char production to U+FFFD.
// strings.Map already turns invalid UTF-8 into U+FFFD.
func xmlChar(r rune) rune {
	switch {
	case r == 0x09 || r == 0x0A || r == 0x0D,
		r >= 0x20 && r <= 0xD7FF,
		r >= 0xE000 && r <= 0xFFFD,
		r >= 0x10000 && r <= 0x10FFFF:
		return r
	}
	return utf8.RuneError
}

// summarize returns body stripped of markup, with whitespace collapsed and
// cut to summaryLength runes. It returns nil if no text is left.
func summarize(body string) *atomSummary {
	text := html.UnescapeString(summaryPolicy.Sanitize(body))
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return nil
	}
	if utf8.RuneCountInString(text) > summaryLength {
		runes := []rune(text)
		text = strings.TrimSpace(string(runes[:summaryLength])) + "…"
	}
	return &atomSummary{Type: "text", Text: text}
}
