package sparql

import (
	"strconv"
)

// Binding is one RDF term bound to a variable in a SELECT result, as
// described by the SPARQL 1.1 Query Results JSON Format.
type Binding struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Datatype string `json:"datatype,omitempty"`
	Language string `json:"xml:lang,omitempty"`
}

// BindingRow maps variable names to their bound values for a single
// result row.
type BindingRow map[string]Binding

// Str returns the bound value for the named variable, if present.
func (r BindingRow) Str(name string) (string, bool) {
	b, ok := r[name]
	if !ok {
		return "", false
	}

	return b.Value, true
}

// Int returns the bound value parsed as an integer.
func (r BindingRow) Int(name string) (int64, bool) {
	b, ok := r[name]
	if !ok {
		return 0, false
	}

	i, err := strconv.ParseInt(b.Value, 10, 64)
	if err != nil {
		return 0, false
	}

	return i, true
}

// Float returns the bound value parsed as a float.
func (r BindingRow) Float(name string) (float64, bool) {
	b, ok := r[name]
	if !ok {
		return 0, false
	}

	f, err := strconv.ParseFloat(b.Value, 64)
	if err != nil {
		return 0, false
	}

	return f, true
}

type selectResult struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []BindingRow `json:"bindings"`
	} `json:"results"`
}

type askResult struct {
	Boolean bool `json:"boolean"`
}
