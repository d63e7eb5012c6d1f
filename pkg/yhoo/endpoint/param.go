package endpoint

import (
	"fmt"
	"strings"

	"github.com/komsit37/yhoo/pkg/yhoo/errs"
)

// Kind is the Go type a parameter value must have.
type Kind int

const (
	String     Kind = iota // string
	StringList             // []string
	Float                  // float64
	Int                    // int
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case StringList:
		return "[]string"
	case Float:
		return "float64"
	case Int:
		return "int"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// matches reports whether v has the Go type required by k.
func (k Kind) matches(v any) bool {
	switch k {
	case String:
		_, ok := v.(string)
		return ok
	case StringList:
		_, ok := v.([]string)
		return ok
	case Float:
		_, ok := v.(float64)
		return ok
	case Int:
		_, ok := v.(int)
		return ok
	}
	return false
}

// Converter maps a validated user value to its wire value.
type Converter func(v any) (any, error)

// Param describes one accepted query parameter.
type Param struct {
	Name      string
	WireName  string
	Kind      Kind
	Required  bool
	Default   any
	Options   []string
	Prefixes  []string
	Converter Converter

	set map[string]struct{}
}

func (p *Param) index() {
	if len(p.Options) == 0 {
		return
	}
	p.set = make(map[string]struct{}, len(p.Options))
	for _, o := range p.Options {
		p.set[o] = struct{}{}
	}
}

func (p *Param) allowed(v string) bool {
	if p.set != nil {
		_, ok := p.set[v]
		return ok
	}
	for _, o := range p.Options {
		if o == v {
			return true
		}
	}
	return false
}

// Validate checks the value type, the prefix of every string element and,
// after prefix stripping, membership in Options.
func (p *Param) Validate(v any) error {
	if !p.Kind.matches(v) {
		return &errs.InvalidParameterTypeError{Param: p.Name, Got: fmt.Sprintf("%T", v), Expected: p.Kind.String()}
	}
	var values []string
	switch t := v.(type) {
	case string:
		values = []string{t}
	case []string:
		values = t
	default:
		if len(p.Options) == 0 {
			return nil
		}
		values = []string{fmt.Sprint(t)}
	}
	for _, s := range values {
		bare, err := p.Unprefix(s)
		if err != nil {
			return err
		}
		if len(p.Options) > 0 && !p.allowed(bare) {
			return &errs.InvalidParameterValueError{Param: p.Name, Value: bare, Options: p.Options}
		}
	}
	return nil
}

// Unprefix strips the longest configured prefix from s. With no prefixes
// configured s is returned unchanged.
func (p *Param) Unprefix(s string) (string, error) {
	if len(p.Prefixes) == 0 {
		return s, nil
	}
	best := -1
	for _, pre := range p.Prefixes {
		if strings.HasPrefix(s, pre) && len(pre) > best {
			best = len(pre)
		}
	}
	if best < 0 {
		return "", &errs.InvalidParameterPrefixError{Param: p.Name, Value: s, Prefixes: p.Prefixes}
	}
	return s[best:], nil
}

// Format converts a validated value to its wire form.
func (p *Param) Format(v any) (any, error) {
	if p.Converter == nil {
		return v, nil
	}
	out, err := p.Converter(v)
	if err != nil {
		return nil, &errs.InvalidParameterValueError{Param: p.Name, Value: v, Reason: err.Error()}
	}
	return out, nil
}

// defaultValue returns a copy of Default so callers cannot alias the shared slice.
func (p *Param) defaultValue() any {
	if l, ok := p.Default.([]string); ok {
		return append([]string(nil), l...)
	}
	return p.Default
}

func joinList(v any) (any, error) {
	l, ok := v.([]string)
	if !ok {
		return nil, fmt.Errorf("expected []string, got %T", v)
	}
	return strings.Join(l, ","), nil
}
