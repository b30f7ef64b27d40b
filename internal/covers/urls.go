// Package covers builds the URLs under which title covers are served and
// resolves those URLs back to files inside the active library root.
package covers

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is returned when a requested path escapes the library root.
var ErrOutsideRoot = errors.New("path escapes library root")

// BuildURL joins baseURL with the path of file relative to root. Each path
// segment is escaped on its own so separators survive and everything else
// inside a name is percent-encoded.
func BuildURL(baseURL, root, file string) (string, error) {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return "", fmt.Errorf("relative cover path: %w", err)
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", ErrOutsideRoot
	}

	segments := strings.Split(rel, "/")
	for i, s := range segments {
		segments[i] = escapeSegment(s)
	}

	return strings.TrimRight(baseURL, "/") + "/" + strings.Join(segments, "/"), nil
}

// componentUnescaper restores the marks QueryEscape encodes but a URI
// component keeps literal, and spells spaces as %20.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escapeSegment percent-encodes everything in a name except letters,
// digits and -_.!~*'().
func escapeSegment(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// Mount maps request paths under the static prefix onto files in a root.
type Mount struct {
	root func() string
}

// NewMount creates a Mount whose root is read on every request, so the
// mount follows root changes without being re-registered.
func NewMount(root func() string) *Mount {
	return &Mount{root: root}
}

// Resolve returns the absolute path of a regular file addressed by the
// slash-separated relative path.
func (m *Mount) Resolve(relative string) (string, error) {
	root, err := filepath.Abs(m.root())
	if err != nil {
		return "", err
	}

	cleaned := filepath.FromSlash(strings.TrimPrefix(filepath.ToSlash(filepath.Clean("/"+relative)), "/"))
	full := filepath.Join(root, cleaned)
	if full != root && !strings.HasPrefix(full, root+string(filepath.Separator)) {
		return "", ErrOutsideRoot
	}

	info, err := os.Stat(full)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", os.ErrNotExist
	}
	return full, nil
}
