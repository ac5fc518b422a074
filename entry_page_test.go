package logbook_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"impractical.co/logbook"
	"impractical.co/logbook/mock"
)

var testEntry = logbook.Entry{
	Title:     "Hello, world",
	URL:       "2024/hello",
	Body:      `<p>Some <em>trusted</em> markup.</p>`,
	CreatedOn: date(2024, time.May, 1),
	UpdatedOn: date(2024, time.May, 2),
}

func TestRenderEntryWithoutRelated(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	finder := mock.NewMockRelatedFinder(ctrl)
	finder.EXPECT().RelatedEntries(gomock.Any(), testEntry).Return(nil, nil)

	var out bytes.Buffer
	if err := newTestBlog(t).RenderEntry(context.Background(), &out, finder, testEntry); err != nil {
		t.Fatalf("error rendering entry: %s", err)
	}
	if strings.Contains(out.String(), "Possibly related") {
		t.Errorf("expected no related section, got\n%s", out.String())
	}
	doc := parseHTML(t, out.String())
	if sections := findAll(doc, elementWithClass("section", "related")); len(sections) != 0 {
		t.Errorf("expected no related section, got %d", len(sections))
	}
	if titles := texts(findAll(doc, element("title"))); len(titles) != 1 || titles[0] != "Hello, world - Test Blog" {
		t.Errorf("unexpected title %v", titles)
	}
	if !strings.Contains(out.String(), string(testEntry.Body)) {
		t.Errorf("expected body to be included verbatim, got\n%s", out.String())
	}
	dates := texts(findAll(doc, elementWithClass("date", "date")))
	if len(dates) != 1 || dates[0] != "May 01, 2024" {
		t.Errorf("expected a single date of May 01, 2024, got %v", dates)
	}
}

func TestRenderEntryNilFinder(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := newTestBlog(t).RenderEntry(context.Background(), &out, nil, testEntry); err != nil {
		t.Fatalf("error rendering entry: %s", err)
	}
	if strings.Contains(out.String(), "Possibly related") {
		t.Errorf("expected no related section, got\n%s", out.String())
	}
}

func TestRenderEntryWithRelated(t *testing.T) {
	t.Parallel()

	related := []logbook.Entry{
		{Title: "First", URL: "2023/first", CreatedOn: date(2023, time.August, 9)},
		{Title: "Second", URL: "2022/second", CreatedOn: date(2022, time.February, 28)},
		{Title: "Third", URL: "2021/third", CreatedOn: date(2021, time.November, 30)},
	}
	ctrl := gomock.NewController(t)
	finder := mock.NewMockRelatedFinder(ctrl)
	finder.EXPECT().RelatedEntries(gomock.Any(), testEntry).Return(related, nil)

	var out bytes.Buffer
	if err := newTestBlog(t).RenderEntry(context.Background(), &out, finder, testEntry); err != nil {
		t.Fatalf("error rendering entry: %s", err)
	}
	doc := parseHTML(t, out.String())
	sections := findAll(doc, elementWithClass("section", "related"))
	if len(sections) != 1 {
		t.Fatalf("expected one related section, got %d", len(sections))
	}
	if headings := texts(findAll(sections[0], element("h2"))); len(headings) != 1 || headings[0] != "Possibly related" {
		t.Errorf("unexpected headings %v", headings)
	}
	items := findAll(sections[0], element("li"))
	if len(items) != len(related) {
		t.Fatalf("expected %d related items, got %d", len(related), len(items))
	}
	for pos, entry := range related {
		links := findAll(items[pos], element("a"))
		if len(links) != 1 {
			t.Fatalf("expected one link in item %d, got %d", pos, len(links))
		}
		if href := attr(links[0], "href"); href != entry.URL {
			t.Errorf("item %d: expected href %q, got %q", pos, entry.URL, href)
		}
		if got := text(links[0]); got != entry.Title {
			t.Errorf("item %d: expected title %q, got %q", pos, entry.Title, got)
		}
		want := "– " + logbook.LongDate(entry.CreatedOn, time.UTC)
		if dates := texts(findAll(items[pos], element("date"))); len(dates) != 1 || dates[0] != want {
			t.Errorf("item %d: expected date %q, got %v", pos, want, dates)
		}
	}
}

func TestRenderEntryIsRepeatable(t *testing.T) {
	t.Parallel()

	related := []logbook.Entry{
		{Title: "Fish & chips", URL: "2023/fish", CreatedOn: date(2023, time.August, 9)},
		{Title: "<Second>", URL: "2022/second", CreatedOn: date(2022, time.February, 28)},
	}
	ctrl := gomock.NewController(t)
	finder := mock.NewMockRelatedFinder(ctrl)
	finder.EXPECT().RelatedEntries(gomock.Any(), testEntry).Return(related, nil).Times(2)

	blog := newTestBlog(t)
	var first, second bytes.Buffer
	if err := blog.RenderEntry(context.Background(), &first, finder, testEntry); err != nil {
		t.Fatalf("error rendering entry: %s", err)
	}
	if err := blog.RenderEntry(context.Background(), &second, finder, testEntry); err != nil {
		t.Fatalf("error rendering entry again: %s", err)
	}
	if first.String() != second.String() {
		t.Errorf("expected identical output.\nfirst:\n%s\nsecond:\n%s", first.String(), second.String())
	}
	if !strings.Contains(first.String(), "Fish &amp; chips") {
		t.Errorf("expected related titles to be escaped, got\n%s", first.String())
	}
}

func TestRenderEntryFinderError(t *testing.T) {
	t.Parallel()

	errLookup := errors.New("index unavailable")
	ctrl := gomock.NewController(t)
	finder := mock.NewMockRelatedFinder(ctrl)
	finder.EXPECT().RelatedEntries(gomock.Any(), testEntry).Return(nil, errLookup)

	var out bytes.Buffer
	err := newTestBlog(t).RenderEntry(context.Background(), &out, finder, testEntry)
	if !errors.Is(err, errLookup) {
		t.Fatalf("expected %v, got %v", errLookup, err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got\n%s", out.String())
	}
}

func TestNewEntryPageValidation(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		entry   logbook.Entry
		related []logbook.Entry
		err     error
	}{
		"missing-url": {
			entry: logbook.Entry{Title: "no url", CreatedOn: date(2020, time.March, 1)},
			err:   logbook.ErrEmptyURL,
		},
		"missing-created": {
			entry: logbook.Entry{Title: "no date", URL: "no-date"},
			err:   logbook.ErrZeroCreatedOn,
		},
		"invalid-related": {
			entry:   testEntry,
			related: []logbook.Entry{{Title: "bad", URL: "bad"}},
			err:     logbook.ErrZeroCreatedOn,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			finder := mock.NewMockRelatedFinder(ctrl)
			finder.EXPECT().RelatedEntries(gomock.Any(), gomock.Any()).Return(tc.related, nil).AnyTimes()

			_, err := logbook.NewEntryPage(context.Background(), finder, tc.entry, logbook.Layout{})
			if !errors.Is(err, tc.err) {
				t.Errorf("expected %v, got %v", tc.err, err)
			}
		})
	}
}
