package handler

import (
	"errors"
	"html"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"
)

var (
	sanitizerStrict = bluemonday.StrictPolicy()
	sanitizerUGC    = bluemonday.UGCPolicy()
)

const excerptLength = 200

// pages are the templates rendered by the handlers, each executed through base.html.
var pages = []string{"home.html", "post.html", "edit_post.html", "posts.html"}

type TemplateRegistry struct {
	templates map[string]*template.Template
}

// NewTemplateRegistry parses every page under templates/ in fsys.
func NewTemplateRegistry(fsys fs.FS) (*TemplateRegistry, error) {
	t := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		tmpl, err := template.New(name).ParseFS(fsys, "templates/"+name, "templates/base.html")
		if err != nil {
			return nil, err
		}
		t[name] = tmpl
	}
	return &TemplateRegistry{templates: t}, nil
}

func (t *TemplateRegistry) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := t.templates[name]
	if !ok {
		err := errors.New("template not found: " + name)
		return err
	}

	return tmpl.ExecuteTemplate(w, "base.html", data)
}

func mdToHTML(md string) []byte {
	// create markdown parser with extensions
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(md))

	// create HTML renderer with extensions
	htmlFlags := mdhtml.CommonFlags | mdhtml.HrefTargetBlank
	opts := mdhtml.RendererOptions{Flags: htmlFlags}
	renderer := mdhtml.NewRenderer(opts)

	return markdown.Render(doc, renderer)
}

func safeMd(content string) template.HTML {
	return template.HTML(sanitizerUGC.SanitizeBytes(mdToHTML(content)))
}

// excerpt is the plain text of the rendered body, cut to excerptLength runes.
func excerpt(content string) string {
	text := html.UnescapeString(sanitizerStrict.Sanitize(string(mdToHTML(content))))
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= excerptLength {
		return text
	}
	return strings.TrimSpace(string(runes[:excerptLength])) + "…"
}
