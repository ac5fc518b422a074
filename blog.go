package logbook

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrInvalidBaseURL is returned when a BlogConfig's BaseURL isn't an
	// absolute http or https URL, or has a query or fragment that paths
	// couldn't be appended after.
	ErrInvalidBaseURL = errors.New("base url must be an absolute http or https url without a query or fragment")

	// ErrMissingAuthor is returned when a BlogConfig has no Author. Atom
	// feeds need an author name.
	ErrMissingAuthor = errors.New("blog author is required")

	// ErrMissingTitle is returned when a BlogConfig has no Title.
	ErrMissingTitle = errors.New("blog title is required")
)

// BlogConfig holds everything a host needs to supply to render the blog.
type BlogConfig struct {
	// Title is the name of the blog, used as a suffix for page titles.
	Title string

	// BaseURL is the canonical root of the blog. A trailing slash is
	// added if it's missing.
	BaseURL string

	// Author and AuthorURI identify the author in the Atom feed. Author
	// is required; AuthorURI is optional.
	Author    string
	AuthorURI string

	// Location is the time zone dates are displayed in. Defaults to UTC.
	Location *time.Location

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// Stylesheets and Scripts are URLs linked to from every page's head.
	Stylesheets []string
	Scripts     []string

	// Templates overrides the default templates. It must contain every
	// template path the pages use; the head and sidebar templates are
	// the ones hosts usually want to replace.
	Templates fs.FS

	// TracerProvider receives rendering spans. Defaults to the global
	// TracerProvider.
	TracerProvider trace.TracerProvider
}

// Blog is the Site every blog page is rendered with. It must be created with
// NewBlog. It's safe for concurrent use.
type Blog struct {
	*CachedSite

	title          string
	baseURL        string
	author         string
	authorURI      string
	location       *time.Location
	now            func() time.Time
	stylesheets    []string
	scripts        []string
	tracerProvider trace.TracerProvider
}

var (
	_ Site             = &Blog{}
	_ FuncMapExtender  = &Blog{}
	_ ServerErrorPager = &Blog{}
	_ Instrumented     = &Blog{}
)

// NewBlog validates cfg and returns a Blog ready to render pages.
func NewBlog(cfg BlogConfig) (*Blog, error) {
	if strings.TrimSpace(cfg.Title) == "" {
		return nil, ErrMissingTitle
	}
	if strings.TrimSpace(cfg.Author) == "" {
		return nil, ErrMissingAuthor
	}
	base, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	templates := cfg.Templates
	if templates == nil {
		templates = DefaultTemplates()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Blog{
		CachedSite:     NewCachedSite(templates),
		title:          cfg.Title,
		baseURL:        base,
		author:         cfg.Author,
		authorURI:      cfg.AuthorURI,
		location:       orUTC(cfg.Location),
		now:            now,
		stylesheets:    slices.Clone(cfg.Stylesheets),
		scripts:        slices.Clone(cfg.Scripts),
		tracerProvider: cfg.TracerProvider,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidBaseURL, raw)
	}
	// "?" and "#" can only start a query or fragment, including the empty
	// ones url.Parse doesn't record in RawQuery or Fragment.
	if parsed.RawQuery != "" || parsed.Fragment != "" || strings.ContainsAny(raw, "?#") {
		return "", fmt.Errorf("%w: %q", ErrInvalidBaseURL, raw)
	}
	return strings.TrimRight(raw, "/") + "/", nil
}

// Title returns the name of the blog.
func (b *Blog) Title() string {
	return b.title
}

// BaseURL returns the canonical root of the blog. It always ends in a single
// slash.
func (b *Blog) BaseURL() string {
	return b.baseURL
}

// URL resolves path against the blog's base URL, with exactly one slash
// between them.
func (b *Blog) URL(path string) string {
	return b.baseURL + strings.TrimLeft(path, "/")
}

// Location returns the time zone dates are displayed in.
func (b *Blog) Location() *time.Location {
	return b.location
}

// FuncMap makes the blog's date and URL helpers available to every
// template.
func (b *Blog) FuncMap(_ context.Context) template.FuncMap {
	return template.FuncMap{
		"longDate": func(t time.Time) string {
			return LongDate(t, b.location)
		},
		"iso8601": func(t time.Time) string {
			return ISO8601(t, b.location)
		},
		"url": b.URL,
	}
}

// ServerErrorPage is rendered in place of any page that fails to render.
func (*Blog) ServerErrorPage(_ context.Context) Page {
	return ErrorPage{}
}

// TracerProvider returns the TracerProvider set in BlogConfig, or nil to use
// the global one.
func (b *Blog) TracerProvider(_ context.Context) trace.TracerProvider {
	return b.tracerProvider
}

// Layout returns the layout every page on the blog is rendered in.
func (b *Blog) Layout() Layout {
	return Layout{
		Head: Head{
			Stylesheets: b.stylesheets,
			Scripts:     b.scripts,
		},
		Sidebar: Sidebar{},
	}
}

// RenderArchive writes the archive page listing every entry to w.
func (b *Blog) RenderArchive(ctx context.Context, w io.Writer, entries []Entry) error {
	page, err := NewArchivePage(entries, b.location, b.Layout())
	if err != nil {
		return err
	}
	return Render(ctx, w, b, page)
}

// RenderEntry writes the page for a single entry to w, including any entries
// finder considers related to it.
func (b *Blog) RenderEntry(ctx context.Context, w io.Writer, finder RelatedFinder, entry Entry) error {
	page, err := NewEntryPage(ctx, finder, entry, b.Layout())
	if err != nil {
		return err
	}
	return Render(ctx, w, b, page)
}
