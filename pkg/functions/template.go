package functions

import (
	"bytes"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/pkg/errors"
)

// TemplateValues is the data passed to template functions.
type TemplateValues struct {
	Name  string
	Args  []string
	Nodes []Node
}

// NewTemplateFunc builds a function from a text/template body. The template
// sees the rendered arguments as .Args and the typed nodes as .Nodes, with
// the sprig helpers available.
//
//	customFunctions:
//	  brand: '{{ index .Args 0 | upper }}'
func NewTemplateFunc(name, body string) (Func, error) {
	tmpl, err := template.New(name).Funcs(sprig.FuncMap()).Option("missingkey=error").Parse(body)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse template function %s", name)
	}

	return func(_ Nodes, args ...Node) (any, error) {
		values := TemplateValues{
			Name:  name,
			Args:  make([]string, len(args)),
			Nodes: args,
		}

		for i, arg := range args {
			if q, ok := arg.(*Quoted); ok {
				values.Args[i] = q.Value
				continue
			}

			values.Args[i] = arg.CSS()
		}

		buf := new(bytes.Buffer)
		if err := tmpl.Execute(buf, values); err != nil {
			return nil, err
		}

		return strings.TrimSpace(buf.String()), nil
	}, nil
}

// RegisterTemplates compiles and registers a set of template functions.
func (r *Registry) RegisterTemplates(defs map[string]string) error {
	for name, body := range defs {
		fn, err := NewTemplateFunc(name, body)
		if err != nil {
			return err
		}

		r.Register(name, fn)
	}

	return nil
}
