// Package functions holds user-defined stylesheet functions.
//
// A function receives its arguments as nodes and may return any value. The
// result is always wrapped as an Anonymous node and emitted verbatim.
//
//	reg := functions.NewRegistry()
//	reg.Register("double", func(n functions.Nodes, args ...functions.Node) (any, error) {
//	    d, ok := args[0].(*functions.Dimension)
//	    if !ok {
//	        return nil, errors.New("double expects a dimension")
//	    }
//	    return n.Dimension(d.Value*2, d.Unit), nil
//	})
package functions

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

type (
	// Func is a custom function callable from stylesheet values.
	Func func(nodes Nodes, args ...Node) (any, error)

	// Registry maps lowercase function names to implementations.
	Registry struct {
		funcs map[string]Func
	}
)

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Func)}
}

// Register adds or replaces a function. Names are case-insensitive.
func (r *Registry) Register(name string, fn Func) {
	r.funcs[strings.ToLower(name)] = fn
}

// RegisterAll registers every entry of fns.
func (r *Registry) RegisterAll(fns map[string]Func) {
	for name, fn := range fns {
		r.Register(name, fn)
	}
}

func (r *Registry) Lookup(name string) (Func, bool) {
	if r == nil {
		return nil, false
	}

	fn, ok := r.funcs[strings.ToLower(name)]
	return fn, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

func (r *Registry) Len() int {
	return len(r.funcs)
}

// Call invokes the named function and wraps its result. A panic inside the
// function is reported as an error.
func (r *Registry) Call(name string, args ...Node) (result Node, err error) {
	fn, ok := r.Lookup(name)
	if !ok {
		return nil, errors.Errorf("function %s is not defined", name)
	}

	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = errors.Errorf("function %s panicked: %v", name, rec)
		}
	}()

	v, err := fn(Nodes{}, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "function %s failed", name)
	}

	if v == nil {
		return &Anonymous{}, nil
	}

	return Nodes{}.Anonymous(v), nil
}

func (r *Registry) String() string {
	return fmt.Sprintf("functions%v", r.Names())
}
