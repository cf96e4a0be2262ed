// Package render owns the server-side page rendering. The site has a
// single index template; documentation pages reuse it with their rendered
// HTML injected as content.
package render

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"

	"github.com/patric-chuzhbe/homesite/internal/assets"
	"github.com/patric-chuzhbe/homesite/internal/config"
)

const indexTemplateName = "index.html"

// Locals is everything a template invocation can see: the full config
// plus the precomputed cache-busting suffixes and the optional page
// content.
type Locals struct {
	Cfg     *config.Config
	Bundle  string
	Style   string
	Content template.HTML
}

// Renderer renders the index template.
type Renderer struct {
	tmpl   *template.Template
	cfg    *config.Config
	hashes *assets.Hashes
}

// New parses the index template from <root>/templates. A parse failure
// is a startup error.
func New(cfg *config.Config, hashes *assets.Hashes) (*Renderer, error) {
	tmpl, err := template.ParseFiles(filepath.Join(cfg.Root, "templates", indexTemplateName))
	if err != nil {
		return nil, fmt.Errorf(
			"in internal/render/render.go/New(): error while `template.ParseFiles()` calling: %w",
			err,
		)
	}

	return &Renderer{
		tmpl:   tmpl,
		cfg:    cfg,
		hashes: hashes,
	}, nil
}

// Index renders the index template with the given content (which may be
// empty for the landing page).
func (r *Renderer) Index(w io.Writer, content template.HTML) error {
	return r.tmpl.ExecuteTemplate(w, indexTemplateName, Locals{
		Cfg:     r.cfg,
		Bundle:  querySuffix(r.hashes.Bundle),
		Style:   querySuffix(r.hashes.Style),
		Content: content,
	})
}

// querySuffix turns a hash token into the query string appended to asset
// URLs. Empty outside production, so dev never fights its own cache.
func querySuffix(hash string) string {
	if hash == "" {
		return ""
	}

	return "?" + hash
}
