package logbook

import (
	"context"
	"fmt"
	"log/slog"
)

//go:generate go run go.uber.org/mock/mockgen -destination=mock/related_finder.go -package=mock impractical.co/logbook RelatedFinder

// RelatedFinder looks up the entries that might interest someone reading a
// given entry. The order of the results is up to the implementation.
type RelatedFinder interface {
	RelatedEntries(ctx context.Context, entry Entry) ([]Entry, error)
}

// EntryPage shows a single entry, followed by links to related entries when
// there are any.
type EntryPage struct {
	Layout  Layout
	Entry   Entry
	Related []Entry
}

// NewEntryPage builds the EntryPage for entry, asking finder for related
// entries. A nil finder means there are no related entries.
func NewEntryPage(ctx context.Context, finder RelatedFinder, entry Entry, layout Layout) (EntryPage, error) {
	if err := entry.Validate(); err != nil {
		return EntryPage{}, err
	}
	var related []Entry
	if finder != nil {
		var err error
		related, err = finder.RelatedEntries(ctx, entry)
		if err != nil {
			return EntryPage{}, fmt.Errorf("error finding entries related to %q: %w", entry.URL, err)
		}
		if err := validateEntries(related); err != nil {
			return EntryPage{}, fmt.Errorf("related to %q: %w", entry.URL, err)
		}
		Logger(ctx).DebugContext(ctx, "found related entries", entryAttr(entry), slog.Int("count", len(related)))
	}
	return EntryPage{
		Layout:  layout,
		Entry:   entry,
		Related: related,
	}, nil
}

func (EntryPage) Templates(_ context.Context) []string {
	return []string{"entry.html.tmpl"}
}

func (p EntryPage) UseComponents(_ context.Context) []Component {
	return []Component{p.Layout}
}

func (EntryPage) Key(_ context.Context) string {
	return "entry.html.tmpl"
}

func (p EntryPage) ExecutedTemplate(_ context.Context) string {
	return p.Layout.BaseTemplate()
}
