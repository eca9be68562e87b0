package httpmetrics

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gorilla/mux"
)

// Route is a matched route as declared by the application.
type Route struct {
	// Path is the declared pattern, e.g. "/users/{id}" or "/users/:id".
	Path string

	// Pattern is set instead of Path for routes declared as a regular
	// expression.
	Pattern *regexp.Regexp
}

// Label renders the route as a path label. Every request matching the same
// declared route yields the same label. Regular-expression routes render as
// "RegExp(/<source>/)".
func (r Route) Label() string {
	if r.Pattern != nil {
		return "RegExp(/" + r.Pattern.String() + "/)"
	}
	return r.Path
}

// Router resolves the declared route of a request. Any error, including
// ErrRouteNotFound, is treated as "no route matched".
type Router interface {
	Lookup(r *http.Request) (Route, error)
}

// RouterFunc adapts an ordinary function to the Router interface.
type RouterFunc func(r *http.Request) (Route, error)

// Lookup calls f(r).
func (f RouterFunc) Lookup(r *http.Request) (Route, error) {
	return f(r)
}

// ServeMuxRouter resolves routes against the patterns registered on an
// http.ServeMux. A method prefix such as "GET " and a host such as
// "example.com" are dropped from the label.
type ServeMuxRouter struct {
	Mux *http.ServeMux
}

// Lookup implements Router.
func (s ServeMuxRouter) Lookup(r *http.Request) (Route, error) {
	_, pattern := s.Mux.Handler(r)
	if pattern == "" {
		return Route{}, ErrRouteNotFound
	}
	if i := strings.IndexByte(pattern, ' '); i >= 0 {
		pattern = strings.TrimLeft(pattern[i+1:], " \t")
	}
	if i := strings.IndexByte(pattern, '/'); i > 0 {
		pattern = pattern[i:]
	}
	return Route{Path: pattern}, nil
}

// MuxRouter resolves routes against a gorilla/mux router using the path
// template of the matched route.
type MuxRouter struct {
	Router *mux.Router
}

// Lookup implements Router.
func (m MuxRouter) Lookup(r *http.Request) (Route, error) {
	var match mux.RouteMatch
	if !m.Router.Match(r, &match) || match.MatchErr != nil || match.Route == nil {
		return Route{}, ErrRouteNotFound
	}
	tpl, err := match.Route.GetPathTemplate()
	if err != nil {
		return Route{}, err
	}
	return Route{Path: tpl}, nil
}
