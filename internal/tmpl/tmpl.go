/*
Package tmpl provides template loading and positional placeholder filling.

Templates are plain UTF-8 text files containing zero or more occurrences of
the literal marker {}. Markers carry no name or index: the Nth marker in
reading order binds to the Nth fill item.
*/
package tmpl

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Marker is the literal placeholder replaced by fill items
const Marker = "{}"

// ErrTemplateNotFound is returned when a template file does not exist under
// the templates directory.
var ErrTemplateNotFound = errors.New("template not found")

// ErrBadTemplateRef is returned for template references that could escape
// the templates directory.
var ErrBadTemplateRef = errors.New("invalid template reference")

// Store loads templates by filename from a single directory, caching each
// template for the duration of the run.
type Store struct {
	dir   string
	cache map[string]string
}

// NewStore creates a store rooted at dir
func NewStore(dir string) *Store {
	return &Store{
		dir:   dir,
		cache: make(map[string]string),
	}
}

// Load returns the raw contents of the named template. The reference must
// be a plain filename; anything containing a path separator or ".." is
// rejected.
func (s *Store) Load(ref string) (string, error) {
	if ref == "" || strings.ContainsAny(ref, `/\`) || strings.Contains(ref, "..") {
		return "", fmt.Errorf("%w: %q", ErrBadTemplateRef, ref)
	}

	if body, ok := s.cache[ref]; ok {
		return body, nil
	}

	data, err := os.ReadFile(filepath.Join(s.dir, ref))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, ref)
		}
		return "", fmt.Errorf("failed to read template %s: %w", ref, err)
	}

	body := string(data)
	s.cache[ref] = body
	return body, nil
}

// Fill replaces {} markers in template left to right with successive
// values. Extra values are ignored. When there are fewer values than
// markers the trailing markers are left literal; callers can detect the
// shortfall with MarkerCount. Replacement is purely textual: substituted
// content is never rescanned for markers.
func Fill(template string, values []string) string {
	var b strings.Builder
	b.Grow(len(template))

	rest := template
	for _, v := range values {
		i := strings.Index(rest, Marker)
		if i < 0 {
			break
		}
		b.WriteString(rest[:i])
		b.WriteString(v)
		rest = rest[i+len(Marker):]
	}
	b.WriteString(rest)

	return b.String()
}

// MarkerCount returns the number of {} markers in template
func MarkerCount(template string) int {
	return strings.Count(template, Marker)
}

// Greet prepends a "Dear <title>," salutation to body when title is
// non-empty; otherwise body is returned unchanged. The salutation is
// separated from the body by a blank line.
func Greet(title, body string) string {
	if title == "" {
		return body
	}
	return "Dear " + title + ",\n\n" + body
}
