package logbook

import (
	"context"
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// DefaultTemplates returns the templates the blog's pages are rendered with
// unless BlogConfig.Templates is set. Hosts replacing only some of them can
// layer their own files over these.
func DefaultTemplates() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		// the embedded directory is fixed at compile time
		panic(err)
	}
	return sub
}

// Layout is the document skeleton every page fills in. Pages define the
// "title" and "body" templates; the layout includes its Head and Sidebar.
type Layout struct {
	Head    Head
	Sidebar Sidebar
}

func (l Layout) Templates(_ context.Context) []string {
	return []string{l.BaseTemplate()}
}

func (l Layout) UseComponents(_ context.Context) []Component {
	return []Component{l.Head, l.Sidebar}
}

// BaseTemplate is the template pages using the layout should execute.
func (Layout) BaseTemplate() string {
	return "layout.html.tmpl"
}

// Head is the shared fragment included in every page's <head>.
type Head struct {
	Stylesheets []string
	Scripts     []string
}

func (Head) Templates(_ context.Context) []string {
	return []string{"head.html.tmpl"}
}

func (h Head) LinkCSS(_ context.Context) []string {
	return h.Stylesheets
}

func (h Head) LinkJS(_ context.Context) []string {
	return h.Scripts
}

// Sidebar is the shared navigation fragment included at the top of every
// page.
type Sidebar struct{}

func (Sidebar) Templates(_ context.Context) []string {
	return []string{"sidebar.html.tmpl"}
}

// ErrorPage is a standalone page shown when another page fails to render.
// It doesn't use the Layout, in case the Layout is what failed.
type ErrorPage struct{}

func (ErrorPage) Templates(_ context.Context) []string {
	return []string{"server_error.html.tmpl"}
}

func (ErrorPage) Key(_ context.Context) string {
	return "server_error.html.tmpl"
}

func (ErrorPage) ExecutedTemplate(_ context.Context) string {
	return "server_error.html.tmpl"
}
