// Package docs renders the documentation pages served under /docs.
// Pages are markdown files in the docs directory of the site root; the
// request path picks the file and the rendered HTML is injected into the
// index template as its content.
package docs

import (
	"fmt"
	"html/template"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"

	"github.com/patric-chuzhbe/homesite/internal/httperr"
)

const indexPageName = "index"

var pageNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Provider resolves request URLs to rendered documentation pages.
type Provider struct {
	docsDir string
}

// New creates a Provider reading pages from <root>/docs.
func New(root string) *Provider {
	return &Provider{
		docsDir: filepath.Join(root, "docs"),
	}
}

// Doc renders the page addressed by u. A missing page reports
// httperr.ErrNotFound; any other failure is an internal error.
func (p *Provider) Doc(u *url.URL) (template.HTML, error) {
	name, err := pageName(u)
	if err != nil {
		return "", err
	}

	raw, err := os.ReadFile(filepath.Join(p.docsDir, name+".md"))
	if os.IsNotExist(err) {
		return "", fmt.Errorf("doc page %q: %w", name, httperr.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf(
			"in internal/docs/docs.go/Doc(): error while `os.ReadFile()` calling: %w",
			err,
		)
	}

	return template.HTML(blackfriday.Run(raw)), nil
}

// pageName maps /docs and /docs/ to the index page, and /docs/<name> to
// name. Anything that is not a plain page name (extra segments, path
// traversal characters) reports not-found rather than touching the disk.
func pageName(u *url.URL) (string, error) {
	rest := strings.TrimPrefix(u.Path, "/docs")
	rest = strings.Trim(rest, "/")

	if rest == "" {
		return indexPageName, nil
	}

	if !pageNamePattern.MatchString(rest) {
		return "", fmt.Errorf("doc path %q: %w", u.Path, httperr.ErrNotFound)
	}

	return rest, nil
}
