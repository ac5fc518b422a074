package logbook

import (
	"context"
	"time"
)

// ArchiveYear is every archived entry created in a single year, newest
// first.
type ArchiveYear struct {
	Year   string
	Months []ArchiveMonth
}

// ArchiveMonth is every archived entry created in a single month of an
// ArchiveYear, newest first.
type ArchiveMonth struct {
	Month string
	Items []ArchiveItem
}

// ArchiveItem is a single entry listed in the archive.
type ArchiveItem struct {
	Entry Entry

	// Date is when the entry was created, formatted with LongDateLayout.
	Date string
}

// GroupArchive sorts entries newest first and groups them by the year, then
// the month, they were created in, as seen from loc. Every year starts with
// its own month group, even if the month matches the last month of the
// previous year.
func GroupArchive(entries []Entry, loc *time.Location) []ArchiveYear {
	var years []ArchiveYear
	var prevYear, prevMonth string
	for _, entry := range SortByDate(entries) {
		year := Year(entry.CreatedOn, loc)
		month := MonthName(entry.CreatedOn, loc)
		if len(years) < 1 || year != prevYear {
			years = append(years, ArchiveYear{Year: year})
			prevYear = year
			prevMonth = ""
		}
		current := &years[len(years)-1]
		if month != prevMonth {
			current.Months = append(current.Months, ArchiveMonth{Month: month})
			prevMonth = month
		}
		months := current.Months
		months[len(months)-1].Items = append(months[len(months)-1].Items, ArchiveItem{
			Entry: entry,
			Date:  LongDate(entry.CreatedOn, loc),
		})
	}
	return years
}

// ArchivePage lists every entry on the blog, grouped by date.
type ArchivePage struct {
	Layout Layout
	Years  []ArchiveYear
}

// NewArchivePage builds an ArchivePage for entries, which may be in any
// order.
func NewArchivePage(entries []Entry, loc *time.Location, layout Layout) (ArchivePage, error) {
	if err := validateEntries(entries); err != nil {
		return ArchivePage{}, err
	}
	return ArchivePage{
		Layout: layout,
		Years:  GroupArchive(entries, loc),
	}, nil
}

func (ArchivePage) Templates(_ context.Context) []string {
	return []string{"archive.html.tmpl"}
}

func (p ArchivePage) UseComponents(_ context.Context) []Component {
	return []Component{p.Layout}
}

func (ArchivePage) Key(_ context.Context) string {
	return "archive.html.tmpl"
}

func (p ArchivePage) ExecutedTemplate(_ context.Context) string {
	return p.Layout.BaseTemplate()
}
