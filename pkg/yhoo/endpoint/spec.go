package endpoint

import (
	"sort"

	"github.com/komsit37/yhoo/pkg/yhoo/errs"
	"github.com/komsit37/yhoo/pkg/yhoo/parser"
)

// Params are user-facing parameter values keyed by parameter name.
type Params map[string]any

// Spec describes one endpoint: where it lives, which response field carries
// its payload, how to parse results and which parameters it accepts.
// A Spec is immutable after NewSpec and safe for concurrent use.
type Spec struct {
	Name          string
	Path          string
	ResponseField string
	Parser        parser.Factory
	// Columns is the preferred leading column order of the endpoint's table.
	Columns []string

	params map[string]*Param
	names  []string
}

// NewSpec indexes params by name.
func NewSpec(name, path, field string, factory parser.Factory, columns []string, params ...Param) *Spec {
	s := &Spec{
		Name:          name,
		Path:          path,
		ResponseField: field,
		Parser:        factory,
		Columns:       columns,
		params:        make(map[string]*Param, len(params)),
	}
	for i := range params {
		p := params[i]
		p.index()
		s.params[p.Name] = &p
		s.names = append(s.names, p.Name)
	}
	return s
}

// Param returns the named parameter description.
func (s *Spec) Param(name string) (Param, bool) {
	p, ok := s.params[name]
	if !ok {
		return Param{}, false
	}
	return *p, true
}

// ParamNames lists accepted parameter names in declaration order.
func (s *Spec) ParamNames() []string {
	return append([]string(nil), s.names...)
}

// Validate checks every supplied parameter, then enforces required ones.
// Required parameters with a default are injected into the returned copy;
// the input map is never modified.
func (s *Spec) Validate(params Params) (Params, error) {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(Params, len(params))
	for _, k := range keys {
		p, ok := s.params[k]
		if !ok {
			return nil, &errs.UnknownParameterError{Param: k, Valid: s.ParamNames()}
		}
		if err := p.Validate(params[k]); err != nil {
			return nil, err
		}
		out[k] = params[k]
	}
	for _, name := range s.names {
		p := s.params[name]
		if !p.Required {
			continue
		}
		if _, ok := out[name]; ok {
			continue
		}
		if p.Default == nil {
			return nil, &errs.MissingParameterError{Param: name}
		}
		out[name] = p.defaultValue()
	}
	return out, nil
}

// Format maps every supplied parameter to its wire name and wire value.
// Omitted parameters never appear in the result.
func (s *Spec) Format(params Params) (map[string]any, error) {
	wire := make(map[string]any, len(params))
	for k, v := range params {
		p, ok := s.params[k]
		if !ok {
			return nil, &errs.UnknownParameterError{Param: k, Valid: s.ParamNames()}
		}
		fv, err := p.Format(v)
		if err != nil {
			return nil, err
		}
		wire[p.WireName] = fv
	}
	return wire, nil
}
