// Package urlutil extracts identifiers from PokeAPI resource URLs and builds
// canonical URLs against a known API base.
//
// All functions are pure and never panic; malformed input yields a false
// second return value or an invalid-URL answer.
package urlutil

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultBaseURL is the public PokeAPI v2 root.
const DefaultBaseURL = "https://pokeapi.co/api/v2"

var defaultBuilder = MustBuilder(DefaultBaseURL)

// Builder builds and validates URLs against a configured API base.
type Builder struct {
	base       string
	host       string
	pathPrefix string
}

// NewBuilder creates a Builder for the given API base URL.
func NewBuilder(base string) (*Builder, error) {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, &url.Error{Op: "parse", URL: base, Err: errMissingHost}
	}

	prefix := "/" + strings.Trim(u.Path, "/")
	if prefix != "/" {
		prefix += "/"
	}

	return &Builder{
		base:       u.Scheme + "://" + u.Host + strings.TrimRight(prefix, "/"),
		host:       strings.ToLower(u.Host),
		pathPrefix: prefix,
	}, nil
}

// MustBuilder is like NewBuilder but panics on a malformed base.
func MustBuilder(base string) *Builder {
	b, err := NewBuilder(base)
	if err != nil {
		panic(err)
	}
	return b
}

// Base returns the normalized base URL without a trailing slash.
func (b *Builder) Base() string {
	return b.base
}

// Build returns {base}/{endpoint}/{identifier}/, or {base}/{endpoint}/ when
// identifier is empty. The identifier is trimmed and lower-cased.
func (b *Builder) Build(endpoint, identifier string) string {
	endpoint = strings.Trim(strings.TrimSpace(endpoint), "/")
	identifier = strings.ToLower(strings.TrimSpace(identifier))

	var sb strings.Builder
	sb.WriteString(b.base)
	sb.WriteByte('/')
	if endpoint != "" {
		sb.WriteString(endpoint)
		sb.WriteByte('/')
	}
	if identifier != "" {
		sb.WriteString(strings.Trim(identifier, "/"))
		sb.WriteByte('/')
	}
	return sb.String()
}

// IsValid reports whether raw parses and points below the builder's host and
// path prefix.
func (b *Builder) IsValid(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if strings.ToLower(u.Host) != b.host {
		return false
	}
	path := u.Path
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return strings.HasPrefix(path, b.pathPrefix)
}

// ExtractID returns the trailing integer path segment of raw. Query strings,
// fragments and a trailing slash are ignored.
func ExtractID(raw string) (int, bool) {
	segment, ok := lastSegment(raw)
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(segment)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

// ExtractName returns the last non-empty path segment of raw.
func ExtractName(raw string) (string, bool) {
	return lastSegment(raw)
}

// BuildAPIURL builds a URL against DefaultBaseURL.
func BuildAPIURL(endpoint, identifier string) string {
	return defaultBuilder.Build(endpoint, identifier)
}

// IsValidAPIURL validates raw against DefaultBaseURL.
func IsValidAPIURL(raw string) bool {
	return defaultBuilder.IsValid(raw)
}

func lastSegment(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i], true
		}
	}
	return "", false
}
