// Package logbook renders the pages and Atom feed of a personal blog.
//
// Entries are supplied by the host, fully formed; logbook never fetches,
// stores, or modifies them. A host creates a single Blog with NewBlog and
// calls RenderArchive, RenderFeed, and RenderEntry with whatever entries
// apply to the request.
//
// Pages are built from Components. A Component names the html/template files
// it needs, and may use other Components through UseComponents; a Page is a
// Component that gets rendered on its own with Render. Every blog page uses
// the Layout, which in turn uses the Head and Sidebar fragments. Hosts that
// want their own chrome replace head.html.tmpl and sidebar.html.tmpl by
// passing their own templates in BlogConfig.
//
// Within templates, the Blog is available as .Site and the Page as .Page.
// Blog.FuncMap lists the helper functions templates can call.
//
// Logging goes to the *slog.Logger attached with LoggingContext, if any; see
// Logger.
// Spans are recorded with OpenTelemetry.
package logbook
