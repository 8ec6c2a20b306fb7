package route

import (
	"slices"

	"github.com/dmitrymomot/rpckit/validate"
)

// Descriptor is the retained, immutable description of a route.
// Path and Method together identify it in a Registry.
type Descriptor struct {
	Path                   string
	Method                 Method
	Strict                 bool
	RequiresAuthentication bool
	Verbose                bool
	// Sources lists the field sources with a configured validator, in gate order.
	Sources []validate.Source
	// HasSession reports whether a session deriver is configured.
	HasSession bool
}

// Validates reports whether the route validates the given source.
func (d Descriptor) Validates(s validate.Source) bool {
	return slices.Contains(d.Sources, s)
}

// Key returns the registry key of the route.
func (d Descriptor) Key() Key {
	return Key{Path: d.Path, Method: d.Method}
}

func (d Descriptor) String() string {
	return d.Key().String()
}

func (d Descriptor) clone() Descriptor {
	d.Sources = slices.Clone(d.Sources)
	return d
}

// Key is the (path, method) identity of a route.
type Key struct {
	Path   string
	Method Method
}

func (k Key) String() string {
	return string(k.Method) + " " + k.Path
}
