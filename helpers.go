package agrisite

import (
	"net/url"
	"path"
	"strconv"
	"strings"
	"unicode"
)

// Slugify converts a title to a URL-safe slug: lowercase, alphanumerics kept,
// whitespace runs collapsed to a single hyphen, everything else dropped.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	var b strings.Builder
	hyphen := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			hyphen = false
		case unicode.IsSpace(r) || r == '-':
			if !hyphen && b.Len() > 0 {
				b.WriteByte('-')
				hyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// parseOptionalInt parses an optional numeric form field. Blank input is not
// an error; it simply stays nil.
func parseOptionalInt(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// parseOptionalFloat parses an optional decimal form field, blank meaning nil.
func parseOptionalFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// excerptOf returns the post excerpt, falling back to a prefix of the content.
func excerptOf(p BlogPost, max int) string {
	if p.Excerpt != "" {
		return p.Excerpt
	}
	content := strings.TrimSpace(p.Content)
	if len(content) <= max {
		return content
	}
	return content[:max] + "..."
}
