package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"quill/app/models"
)

//go:embed templates/*.html
var files embed.FS

var pages = []string{
	"index",
	"post",
	"make-post",
	"register",
	"login",
	"about",
	"contact",
	"error",
}

// Page is the data every template receives.
type Page struct {
	Title       string
	CurrentUser *models.User
	IsAdmin     bool
	Flashes     []string

	Posts  []*models.Post
	Post   *models.Post
	Form   interface{}
	Errors models.FormErrors
	IsEdit bool

	Status  int
	Message string
}

// Renderer executes the embedded page templates inside the shared layout.
type Renderer struct {
	templates map[string]*template.Template
}

// New parses every page together with the layout.
func New() (*Renderer, error) {
	funcs := template.FuncMap{
		"gravatar": models.Gravatar,
		// Post bodies come from the administrator's rich text editor.
		"safe": func(s string) template.HTML { return template.HTML(s) },
	}

	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(files,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

// Render writes the named page. Output is buffered so that a template error never
// leaves a half-written response.
func (r *Renderer) Render(w io.Writer, name string, data *Page) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
