package tmpl

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
)

//go:embed templates
var files embed.FS

// Templates holds all page templates, keyed by page file name.
type Templates struct {
	pages map[string]*template.Template
	base  *template.Template
}

// ExecuteTemplate renders a full page through the layout.
func (t *Templates) ExecuteTemplate(w io.Writer, name string, data any) error {
	tmpl, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

// ExecutePartial renders one {{define}} block from the shared partials,
// used for SSE fragment patches.
func (t *Templates) ExecutePartial(w io.Writer, name string, data any) error {
	if t.base.Lookup(name) == nil {
		return fmt.Errorf("partial %q not found", name)
	}
	return t.base.ExecuteTemplate(w, name, data)
}

// Load parses the embedded templates. Each page gets its own clone of the
// layout and partials so {{define "content"}} doesn't collide.
func Load(assetVer string) (*Templates, error) {
	funcMap := template.FuncMap{
		"assetVer": func() string { return assetVer },
	}

	base, err := template.New("base").Funcs(funcMap).ParseFS(files, "templates/layout.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pageFiles, err := fs.Glob(files, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pages := map[string]*template.Template{}
	for _, f := range pageFiles {
		name := path.Base(f)
		if name == "layout.html" {
			continue
		}
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone base for %s: %w", name, err)
		}
		if _, err := clone.ParseFS(files, f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = clone
	}

	return &Templates{pages: pages, base: base}, nil
}
