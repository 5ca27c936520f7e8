// Package navigation carries the "where was the user going" value through the
// login flow as an explicit parameter instead of ambient session storage.
package navigation

import (
	"net/url"
	"strings"
)

const (
	LoginPath    = "/login"
	RegisterPath = "/cadastro"
	DefaultPath  = "/dashboard"
)

// Intent is a local path to return to after authentication. The zero value
// means "no recorded destination".
type Intent struct {
	path string
}

// Parse keeps raw only when it is a local absolute path that is not one of the
// auth screens; anything else yields the zero Intent.
func Parse(raw string) Intent {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.Contains(raw, `\`) {
		return Intent{}
	}
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" {
		return Intent{}
	}
	switch strings.TrimRight(u.Path, "/") {
	case LoginPath, RegisterPath:
		return Intent{}
	}
	return Intent{path: u.RequestURI()}
}

// Target is where to go after login: the recorded path or DefaultPath.
func (i Intent) Target() string {
	if i.path == "" {
		return DefaultPath
	}
	return i.path
}

func (i Intent) IsZero() bool {
	return i.path == ""
}

func (i Intent) String() string {
	return i.path
}

// LoginURL is the redirect for an unauthenticated visit to a protected path.
func LoginURL(from string) string {
	i := Parse(from)
	if i.IsZero() {
		return LoginPath
	}
	return LoginPath + "?next=" + url.QueryEscape(i.path)
}
