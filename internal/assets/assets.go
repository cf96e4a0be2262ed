// Package assets computes cache-busting tokens for the static files the
// index template links. A token changes whenever the file bytes change, so
// appending it as a query suffix defeats stale browser and CDN caches after
// a deploy.
package assets

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
)

// HashLength is the length of every token produced by Hash.
const HashLength = 20

// Tracked assets, relative to the site root.
const (
	bundleRelPath = "static/bundle.js"
	styleRelPath  = "static/style.css"
)

// Hashes holds the precomputed query suffixes for the tracked assets.
// Both are the empty string outside production so local iteration never
// serves stale cached output. Read-only after New returns.
type Hashes struct {
	Bundle string
	Style  string
}

// Hash produces a deterministic, URL-safe token for the given bytes:
// a SHA-256 digest in the URL-safe base64 alphabet, truncated to
// HashLength characters. The alphabet contains none of `+`, `/` or `=`.
func Hash(b []byte) string {
	digest := sha256.Sum256(b)

	return base64.RawURLEncoding.EncodeToString(digest[:])[:HashLength]
}

// New computes the tokens for the tracked assets under root.
// In production a missing or unreadable asset file is a fatal condition and
// is returned as an error; outside production nothing is read.
func New(root string, production bool) (*Hashes, error) {
	if !production {
		return &Hashes{}, nil
	}

	bundle, err := hashFile(filepath.Join(root, bundleRelPath))
	if err != nil {
		return nil, err
	}

	style, err := hashFile(filepath.Join(root, styleRelPath))
	if err != nil {
		return nil, err
	}

	return &Hashes{
		Bundle: bundle,
		Style:  style,
	}, nil
}

func hashFile(name string) (string, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf(
			"in internal/assets/assets.go/hashFile(): error while `os.ReadFile()` calling: %w",
			err,
		)
	}

	return Hash(b), nil
}
