package scrollwork

import (
	"fmt"
	"sort"
)

// Page builds one route's content. Mount adds its elements under root and
// records every registration in scope.
type Page interface {
	Mount(c *Choreographer, root *Element, scope *Scope)
}

// PageFunc adapts a function to Page.
type PageFunc func(c *Choreographer, root *Element, scope *Scope)

// Mount calls f.
func (f PageFunc) Mount(c *Choreographer, root *Element, scope *Scope) {
	f(c, root, scope)
}

// Router swaps page content on route changes. Navigating disposes the
// previous page's scope and content, resets the scroll position to the top,
// mounts the next page and forces a re-measurement.
type Router struct {
	c       *Choreographer
	routes  map[string]Page
	path    string
	content *Element
	scope   *Scope

	// OnNavigate, if set, runs after every successful navigation.
	OnNavigate func(path string)
}

// NewRouter creates a router mounting pages under c's document.
func NewRouter(c *Choreographer) *Router {
	return &Router{c: c, routes: make(map[string]Page)}
}

// Handle registers page for path.
func (r *Router) Handle(path string, page Page) {
	r.routes[path] = page
}

// Routes returns the registered paths, sorted.
func (r *Router) Routes() []string {
	paths := make([]string, 0, len(r.routes))
	for p := range r.routes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Path returns the current route.
func (r *Router) Path() string {
	return r.path
}

// Content returns the current page's root element, or nil.
func (r *Router) Content() *Element {
	return r.content
}

// Scope returns the current page's scope, or nil.
func (r *Router) Scope() *Scope {
	return r.scope
}

// Navigate mounts the page registered for path.
func (r *Router) Navigate(path string) error {
	page, ok := r.routes[path]
	if !ok {
		return fmt.Errorf("navigate %q: no such route", path)
	}

	if r.scope != nil {
		r.scope.Dispose()
	}
	if r.content != nil {
		r.content.Dispose()
	}

	r.c.ScrollTo(0, 0, nil)

	r.content = NewContainer("page:"+path, FlowColumn)
	r.c.Document().AddChild(r.content)
	r.scope = NewScope()
	r.path = path
	page.Mount(r.c, r.content, r.scope)

	r.c.InvalidateMeasurements()
	debugf("navigated to %q", path)
	if r.OnNavigate != nil {
		r.OnNavigate(path)
	}
	return nil
}
