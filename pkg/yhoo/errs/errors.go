package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Error groups. Every typed error below reports its group through Is, so
// callers can branch with errors.Is(err, errs.ErrConfiguration).
var (
	// ErrConfiguration covers request validation failures raised before any network call.
	ErrConfiguration = errors.New("invalid request configuration")
	// ErrAPI marks a failure reported by the remote API inside a response payload.
	ErrAPI = errors.New("api error")
	// ErrParse marks a payload that does not match the expected shape.
	ErrParse = errors.New("malformed response")
)

// UnknownEndpointError reports an endpoint name with no registered spec.
type UnknownEndpointError struct {
	Name      string
	Available []string
}

func (e *UnknownEndpointError) Error() string {
	return fmt.Sprintf("unknown endpoint %q; available: %s", e.Name, strings.Join(e.Available, ", "))
}

func (e *UnknownEndpointError) Is(target error) bool { return target == ErrConfiguration }

// UnknownParameterError reports a parameter key the endpoint does not accept.
type UnknownParameterError struct {
	Param string
	Valid []string
}

func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("unknown parameter %q; expected one of [%s]", e.Param, strings.Join(e.Valid, ", "))
}

func (e *UnknownParameterError) Is(target error) bool { return target == ErrConfiguration }

// MissingParameterError reports a required parameter with no default that was omitted.
type MissingParameterError struct {
	Param string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing parameter %q", e.Param)
}

func (e *MissingParameterError) Is(target error) bool { return target == ErrConfiguration }

// InvalidParameterTypeError reports a value whose Go type does not match the parameter kind.
type InvalidParameterTypeError struct {
	Param    string
	Got      string
	Expected string
}

func (e *InvalidParameterTypeError) Error() string {
	return fmt.Sprintf("%q has invalid type %s, expected %s", e.Param, e.Got, e.Expected)
}

func (e *InvalidParameterTypeError) Is(target error) bool { return target == ErrConfiguration }

// InvalidParameterValueError reports a value outside the allowed options, or
// one the parameter converter could not interpret.
type InvalidParameterValueError struct {
	Param   string
	Value   any
	Options []string
	Reason  string
}

func (e *InvalidParameterValueError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%q has invalid value %v: %s", e.Param, e.Value, e.Reason)
	}
	return fmt.Sprintf("%q has invalid value %v, must be one of [%s]", e.Param, e.Value, preview(e.Options))
}

// preview keeps long option lists readable in messages.
func preview(opts []string) string {
	const limit = 12
	if len(opts) <= limit {
		return strings.Join(opts, ", ")
	}
	return fmt.Sprintf("%s, ... (%d total)", strings.Join(opts[:limit], ", "), len(opts))
}

func (e *InvalidParameterValueError) Is(target error) bool { return target == ErrConfiguration }

// InvalidParameterPrefixError reports a value that starts with none of the configured prefixes.
type InvalidParameterPrefixError struct {
	Param    string
	Value    string
	Prefixes []string
}

func (e *InvalidParameterPrefixError) Error() string {
	return fmt.Sprintf("%q has invalid prefix in %q, it must start with one of [%s]", e.Param, e.Value, strings.Join(e.Prefixes, ", "))
}

func (e *InvalidParameterPrefixError) Is(target error) bool { return target == ErrConfiguration }

// APIError carries the code and description reported by the remote API verbatim.
type APIError struct {
	Ticker      string
	Code        string
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("got error %q from Yahoo Finance API, reason was: %q", e.Code, e.Description)
}

func (e *APIError) Is(target error) bool { return target == ErrAPI }

// MalformedResponseError reports a missing or mistyped field in a payload.
type MalformedResponseError struct {
	Field  string
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	msg := "malformed response"
	if e.Field != "" {
		msg += ": field " + e.Field
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

func (e *MalformedResponseError) Is(target error) bool { return target == ErrParse }

// UnknownEnumValueError reports a wire string outside a closed enumeration.
type UnknownEnumValueError struct {
	Enum  string
	Value string
}

func (e *UnknownEnumValueError) Error() string {
	return fmt.Sprintf("unknown %s value %q", e.Enum, e.Value)
}

func (e *UnknownEnumValueError) Is(target error) bool { return target == ErrParse }
