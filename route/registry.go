package route

import (
	"cmp"
	"fmt"
	"net/http"
	"slices"
)

// Registrable is anything that can be stored in a Registry; every *Route is.
type Registrable interface {
	http.Handler
	Descriptor() Descriptor
}

type entry struct {
	desc    Descriptor
	handler http.Handler
}

// Registry maps path, then method, to a route. It is built once and never
// mutated afterwards, so concurrent reads need no locking.
type Registry struct {
	routes map[string]map[Method]entry
	size   int
}

// NewRegistry builds a registry from routes. When two routes share a path
// and method the one registered last wins; use NewStrictRegistry to reject
// such conflicts instead.
func NewRegistry(routes ...Registrable) *Registry {
	reg := &Registry{routes: make(map[string]map[Method]entry, len(routes))}
	for _, rt := range routes {
		if rt == nil {
			continue
		}
		reg.insert(rt)
	}
	return reg
}

// NewStrictRegistry is NewRegistry that fails with ErrDuplicateRoute on
// the first (path, method) conflict.
func NewStrictRegistry(routes ...Registrable) (*Registry, error) {
	seen := make(map[Key]struct{}, len(routes))
	for _, rt := range routes {
		if rt == nil {
			continue
		}
		key := rt.Descriptor().Key()
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRoute, key)
		}
		seen[key] = struct{}{}
	}
	return NewRegistry(routes...), nil
}

func (reg *Registry) insert(rt Registrable) {
	desc := rt.Descriptor()
	methods, ok := reg.routes[desc.Path]
	if !ok {
		methods = make(map[Method]entry, 1)
		reg.routes[desc.Path] = methods
	}
	if _, exists := methods[desc.Method]; !exists {
		reg.size++
	}
	methods[desc.Method] = entry{desc: desc, handler: rt}
}

// Has reports whether a route is registered for path and method.
func (reg *Registry) Has(path string, method Method) bool {
	if reg == nil {
		return false
	}
	_, ok := reg.routes[path][method]
	return ok
}

// Lookup returns the descriptor registered for path and method.
func (reg *Registry) Lookup(path string, method Method) (Descriptor, bool) {
	if reg == nil {
		return Descriptor{}, false
	}
	e, ok := reg.routes[path][method]
	if !ok {
		return Descriptor{}, false
	}
	return e.desc.clone(), true
}

// Handler returns the entry point registered for path and method.
func (reg *Registry) Handler(path string, method Method) (http.Handler, bool) {
	if reg == nil {
		return nil, false
	}
	e, ok := reg.routes[path][method]
	return e.handler, ok
}

// Methods returns the methods registered for path, sorted.
func (reg *Registry) Methods(path string) []Method {
	if reg == nil {
		return nil
	}
	out := make([]Method, 0, len(reg.routes[path]))
	for m := range reg.routes[path] {
		out = append(out, m)
	}
	slices.Sort(out)
	return out
}

// Routes returns every descriptor sorted by path, then method.
func (reg *Registry) Routes() []Descriptor {
	if reg == nil {
		return nil
	}
	out := make([]Descriptor, 0, reg.size)
	for _, methods := range reg.routes {
		for _, e := range methods {
			out = append(out, e.desc.clone())
		}
	}
	slices.SortFunc(out, func(a, b Descriptor) int {
		return cmp.Or(cmp.Compare(a.Path, b.Path), cmp.Compare(a.Method, b.Method))
	})
	return out
}

// Each calls fn for every route in Routes order. It is the hook for
// mounting routes on a router.
func (reg *Registry) Each(fn func(d Descriptor, h http.Handler)) {
	for _, d := range reg.Routes() {
		h, _ := reg.Handler(d.Path, d.Method)
		fn(d, h)
	}
}

// Len returns the number of registered routes.
func (reg *Registry) Len() int {
	if reg == nil {
		return 0
	}
	return reg.size
}
