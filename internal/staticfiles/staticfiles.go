// Package staticfiles serves static assets from an ordered list of
// directories. A request whose path names a regular file in one of them
// is answered directly with the configured cache lifetime and never
// reaches the route handlers.
package staticfiles

import (
	"fmt"
	"net/http"
	"path"
)

// Serve returns the middleware checking the given roots in order.
// maxAgeSeconds drives the Cache-Control header on every file served.
func Serve(roots []string, maxAgeSeconds int) func(http.Handler) http.Handler {
	dirs := make([]http.Dir, 0, len(roots))
	for _, root := range roots {
		dirs = append(dirs, http.Dir(root))
	}
	cacheControl := fmt.Sprintf("max-age=%d", maxAgeSeconds)

	return func(h http.Handler) http.Handler {
		middleware := func(response http.ResponseWriter, request *http.Request) {
			if request.Method != http.MethodGet && request.Method != http.MethodHead {
				h.ServeHTTP(response, request)
				return
			}

			for _, dir := range dirs {
				if serveFromDir(dir, cacheControl, response, request) {
					return
				}
			}

			h.ServeHTTP(response, request)
		}

		return http.HandlerFunc(middleware)
	}
}

// serveFromDir reports whether the request was satisfied from dir.
// http.Dir confines lookups to the root, so traversal segments in the
// URL cannot escape it.
func serveFromDir(
	dir http.Dir,
	cacheControl string,
	response http.ResponseWriter,
	request *http.Request,
) bool {
	name := path.Clean("/" + request.URL.Path)

	file, err := dir.Open(name)
	if err != nil {
		return false
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil || info.IsDir() {
		return false
	}

	response.Header().Set("Cache-Control", cacheControl)
	http.ServeContent(response, request, info.Name(), info.ModTime(), file)

	return true
}
