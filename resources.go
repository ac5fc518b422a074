package logbook

import (
	"context"
)

// CSSLinker is an interface that Components can fulfill to include
// stylesheets that should be loaded through a <link> element. The URLs are
// made available to templates as .CSS.
type CSSLinker interface {
	// LinkCSS returns a list of URLs to CSS files that should be linked to
	// from the output HTML.
	LinkCSS(context.Context) []string
}

// JSLinker is an interface that Components can fulfill to include scripts
// that should be loaded through a <script> element with a src attribute. The
// URLs are made available to templates as .JS.
type JSLinker interface {
	// LinkJS returns a list of URLs to JavaScript files that should be
	// linked to from the output HTML.
	LinkJS(context.Context) []string
}

func getComponentCSSLinks(ctx context.Context, component Component) []string {
	return collectLinks(ctx, component, func(comp Component) []string {
		link, ok := comp.(CSSLinker)
		if !ok {
			return nil
		}
		return link.LinkCSS(ctx)
	})
}

func getComponentJSLinks(ctx context.Context, component Component) []string {
	return collectLinks(ctx, component, func(comp Component) []string {
		link, ok := comp.(JSLinker)
		if !ok {
			return nil
		}
		return link.LinkJS(ctx)
	})
}

// collectLinks walks component and everything it uses, returning the
// deduplicated output of links in the order each URL was first seen.
func collectLinks(ctx context.Context, component Component, links func(Component) []string) []string {
	var results []string
	seen := map[string]struct{}{}
	for _, comp := range getRecursiveComponents(ctx, component) {
		for _, source := range links(comp) {
			if _, ok := seen[source]; ok {
				continue
			}
			results = append(results, source)
			seen[source] = struct{}{}
		}
	}
	return results
}
