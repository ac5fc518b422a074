package logbook

import (
	"errors"
	"fmt"
	"html/template"
	"slices"
	"time"
)

var (
	// ErrEmptyURL is returned when an Entry has no URL to link to.
	ErrEmptyURL = errors.New("entry has no url")

	// ErrZeroCreatedOn is returned when an Entry has no creation time.
	ErrZeroCreatedOn = errors.New("entry has no creation time")

	// ErrZeroUpdatedOn is returned when an Entry being syndicated has no
	// update time.
	ErrZeroUpdatedOn = errors.New("entry has no update time")
)

// Entry is a single blog post, as supplied by the host. Renderers never
// modify Entries.
type Entry struct {
	Title string

	// URL is a path fragment identifying the entry, relative to the
	// site's base URL. It is unique per Entry.
	URL string

	// Body is the pre-rendered HTML of the entry. It is trusted, and
	// included in pages without escaping.
	Body template.HTML

	CreatedOn time.Time

	// UpdatedOn is only used when syndicating the entry.
	UpdatedOn time.Time
}

// Validate checks that the Entry has everything needed to render it in a
// page.
func (e Entry) Validate() error {
	if e.URL == "" {
		return fmt.Errorf("invalid entry %q: %w", e.Title, ErrEmptyURL)
	}
	if e.CreatedOn.IsZero() {
		return fmt.Errorf("invalid entry %q: %w", e.Title, ErrZeroCreatedOn)
	}
	return nil
}

// SortByDate returns a copy of entries, newest first. Entries created at the
// same instant keep their relative order.
func SortByDate(entries []Entry) []Entry {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return b.CreatedOn.Compare(a.CreatedOn)
	})
	return sorted
}

func validateEntries(entries []Entry) error {
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return err
		}
	}
	return nil
}
