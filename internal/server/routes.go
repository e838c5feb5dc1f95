// Package server exposes the simulation over HTTP: the JSON API, the admin
// routes page, and the embedded static assets. Every route registers through
// Handle so the route table documents itself.
package server

import (
	"net/http"
	"strings"
)

type RouteDoc struct {
	Method      string `json:"method"`
	Pattern     string `json:"pattern"`
	Group       string `json:"group,omitempty"`
	Summary     string `json:"summary,omitempty"`
	ExampleBody string `json:"example_body,omitempty"`
}

type RouteRegistry struct {
	routes []RouteDoc
}

func (rr *RouteRegistry) Add(doc RouteDoc) {
	if doc.Group == "" {
		doc.Group = groupFor(doc.Pattern)
	}
	rr.routes = append(rr.routes, doc)
}

func (rr *RouteRegistry) List() []RouteDoc {
	out := make([]RouteDoc, len(rr.routes))
	copy(out, rr.routes)
	return out
}

// Groups returns the registered routes bucketed by group, in first-seen
// order. The admin page renders one table per bucket.
func (rr *RouteRegistry) Groups() []RouteGroup {
	var out []RouteGroup
	index := map[string]int{}
	for _, doc := range rr.routes {
		i, ok := index[doc.Group]
		if !ok {
			i = len(out)
			index[doc.Group] = i
			out = append(out, RouteGroup{Name: doc.Group})
		}
		out[i].Routes = append(out[i].Routes, doc)
	}
	return out
}

type RouteGroup struct {
	Name   string     `json:"name"`
	Routes []RouteDoc `json:"routes"`
}

// groupFor derives a bucket from the first meaningful path segment, so
// /api/players/{id}/advance and /api/players land together.
func groupFor(pattern string) string {
	p := strings.TrimPrefix(pattern, "/api/")
	p = strings.TrimPrefix(p, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "misc"
	}
	return p
}

func Handle(mux *http.ServeMux, rr *RouteRegistry, methodAndPattern, summary, exampleBody string, h http.HandlerFunc) {
	parts := strings.SplitN(methodAndPattern, " ", 2)
	method, pattern := parts[0], ""
	if len(parts) == 2 {
		pattern = parts[1]
	}
	rr.Add(RouteDoc{Method: method, Pattern: pattern, Summary: summary, ExampleBody: exampleBody})
	mux.HandleFunc(methodAndPattern, h)
}
