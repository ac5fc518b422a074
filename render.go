package logbook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrNoTemplatePath is returned when a template path is needed, but
	// none are supplied.
	ErrNoTemplatePath = errors.New("need at least one template path")

	// ErrTemplatePatternMatchesNoFiles is returned when a template path is
	// a pattern, but that pattern doesn't match any files.
	ErrTemplatePatternMatchesNoFiles = errors.New("pattern matches no files")
)

// Component is an interface for a piece of a page that can be rendered to
// HTML.
type Component interface {
	// Templates returns a list of filepaths to html/template contents
	// that need to be parsed before the component can be rendered.
	Templates(context.Context) []string
}

// ComponentUser is an interface that a Component can optionally implement to
// list the Components that it relies upon. Those Components have their
// templates parsed and their optional interfaces consulted whenever the
// Component using them is rendered.
type ComponentUser interface {
	// UseComponents returns the Components that this Component relies on.
	UseComponents(context.Context) []Component
}

// FuncMapExtender is an interface that Components and Sites can fulfill to
// add to the map of functions available to templates when rendering.
type FuncMapExtender interface {
	// FuncMap returns an html/template.FuncMap containing all the
	// functions that the Component is adding to the FuncMap.
	FuncMap(context.Context) template.FuncMap
}

// Page is a Component that gets rendered on its own, rather than being
// included in another Component. It should contain all the information
// needed to render itself and the Components it uses.
type Page interface {
	Component

	// Key is a unique key to use when caching this page's parsed
	// templates. A good key is consistent, but unique per Page type.
	Key(context.Context) string

	// ExecutedTemplate is the template that needs to actually be executed
	// when rendering the page.
	//
	// This is usually not the template for the Component defining the
	// page; it's usually the layout template that the page fills blocks
	// in.
	ExecutedTemplate(context.Context) string
}

// RenderData is the data that is passed to a page's templates when rendering
// it.
type RenderData[SiteType Site, PageType Page] struct {
	// Site holds the configuration shared by every page.
	Site SiteType

	// Page is the information for a specific page.
	Page PageType

	// CSS holds the stylesheet URLs linked to by the page and every
	// Component it uses, in the order they were first seen.
	CSS []string

	// JS holds the script URLs linked to by the page and every Component
	// it uses, in the order they were first seen.
	JS []string
}

// Render renders the passed Page to the Writer. Output is only written once
// the page has rendered successfully. If it can't be rendered and the Site
// implements ServerErrorPager, the server error page is written instead. The
// original rendering error is always returned so the host can set the
// appropriate status.
func Render[SiteType Site, PageType Page](ctx context.Context, out io.Writer, site SiteType, page PageType) error {
	key := page.Key(ctx)
	ctx, span := tracer(ctx, site).Start(ctx, "logbook.Render", trace.WithAttributes(
		attribute.String("logbook.page.key", key),
		attribute.String("logbook.page.type", fmt.Sprintf("%T", page)),
	))
	defer span.End()

	var buf bytes.Buffer
	err := basicRender(ctx, &buf, site, page)
	if err == nil {
		_, err = buf.WriteTo(out)
		if err != nil {
			err = fmt.Errorf("error writing %T: %w", page, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return err
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	Logger(ctx).ErrorContext(ctx, "error rendering page",
		pageAttr(ctx, page),
		slog.Any("err", err),
	)

	pager, ok := Site(site).(ServerErrorPager)
	if !ok {
		return err
	}
	buf.Reset()
	errPage := pager.ServerErrorPage(ctx)
	pageErr := basicRender(ctx, &buf, site, errPage)
	if pageErr != nil {
		Logger(ctx).ErrorContext(ctx, "error rendering server error page",
			pageAttr(ctx, errPage),
			slog.Any("err", pageErr),
		)
		return err
	}
	if _, writeErr := buf.WriteTo(out); writeErr != nil {
		Logger(ctx).ErrorContext(ctx, "error writing server error page", slog.Any("err", writeErr))
	}
	return err
}

func basicRender[SiteType Site, PageType Page](ctx context.Context, output io.Writer, site SiteType, page PageType) error {
	tmpl, err := getTemplate(ctx, site, page)
	if err != nil {
		return err
	}

	data := RenderData[SiteType, PageType]{
		Site: site,
		Page: page,
		CSS:  getComponentCSSLinks(ctx, page),
		JS:   getComponentJSLinks(ctx, page),
	}

	executed := page.ExecutedTemplate(ctx)
	err = tmpl.ExecuteTemplate(output, executed, data)
	if err != nil {
		return fmt.Errorf("error executing template %q for %T: %w", executed, page, err)
	}
	return nil
}

func getTemplate(ctx context.Context, site Site, page Page) (*template.Template, error) {
	key := page.Key(ctx)
	if cache, ok := site.(TemplateCacher); ok {
		cached := cache.GetCachedTemplate(ctx, key)
		if cached != nil {
			return cached, nil
		}
		Logger(ctx).DebugContext(ctx, "template cache miss", pageAttr(ctx, page))
	}
	tmplPaths := getComponentTemplatePaths(ctx, page)
	if len(tmplPaths) < 1 {
		return nil, fmt.Errorf("error rendering %T: %w", page, ErrNoTemplatePath)
	}
	funcMap := getComponentFuncMap(ctx, site, page)
	parsed, err := parseTemplates(site.TemplateDir(ctx), funcMap, tmplPaths...)
	if err != nil {
		return nil, fmt.Errorf("error parsing templates %v for page %T: %w", tmplPaths, page, err)
	}
	if cache, ok := site.(TemplateCacher); ok {
		cache.SetCachedTemplate(ctx, key, parsed)
	}
	return parsed, nil
}

func getRecursiveComponents(ctx context.Context, component Component) []Component {
	results := []Component{component}

	if uses, ok := component.(ComponentUser); ok {
		children := uses.UseComponents(ctx)
		for _, child := range children {
			results = append(results, getRecursiveComponents(ctx, child)...)
		}
	}
	return results
}

func getComponentTemplatePaths(ctx context.Context, component Component) []string {
	var results []string
	seen := map[string]struct{}{}
	components := getRecursiveComponents(ctx, component)
	for _, comp := range components {
		paths := comp.Templates(ctx)
		for _, path := range paths {
			if _, ok := seen[path]; !ok {
				results = append(results, path)
				seen[path] = struct{}{}
			}
		}
	}
	return results
}

func getComponentFuncMap(ctx context.Context, site Site, component Component) template.FuncMap {
	results := template.FuncMap{}
	if fm, ok := site.(FuncMapExtender); ok {
		results = mergeFuncMaps(results, fm.FuncMap(ctx))
	}
	components := getRecursiveComponents(ctx, component)
	for _, comp := range components {
		fm, ok := comp.(FuncMapExtender)
		if !ok {
			continue
		}
		results = mergeFuncMaps(results, fm.FuncMap(ctx))
	}
	return results
}

func parseTemplates(fsys fs.FS, funcs template.FuncMap, patterns ...string) (*template.Template, error) {
	var files []string
	for _, pattern := range patterns {
		list, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("error listing files for %q: %w", pattern, err)
		}
		if len(list) < 1 {
			return nil, fmt.Errorf("error parsing %q: %w", pattern, ErrTemplatePatternMatchesNoFiles)
		}
		files = append(files, list...)
	}
	if len(files) < 1 {
		return nil, ErrNoTemplatePath
	}
	tmpl := template.New("").Funcs(funcs)
	for _, file := range files {
		sub := tmpl.New(file)
		contents, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("error reading %q: %w", file, err)
		}
		_, err = sub.Parse(string(contents))
		if err != nil {
			return nil, fmt.Errorf("error parsing %q: %w", file, err)
		}
	}
	return tmpl, nil
}

// mergeFuncMaps flattens two FuncMaps into one, with the values in `page`
// overriding the values in `in` if they have the same keys.
func mergeFuncMaps(in template.FuncMap, page template.FuncMap) template.FuncMap {
	res := template.FuncMap{}
	for k, v := range in {
		res[k] = v
	}
	for k, v := range page {
		res[k] = v
	}
	return res
}
