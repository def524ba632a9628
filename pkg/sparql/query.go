package sparql

import (
	"strings"
)

// TriplePattern is one subject-predicate-object statement. Mutations are
// assembled as lists of these and rendered uniformly, instead of
// concatenating conditionally built query fragments.
type TriplePattern struct {
	Subject   Term
	Predicate Term
	Object    Term
}

func (t TriplePattern) String() string {
	return t.Subject.String() + " " + t.Predicate.String() + " " + t.Object.String() + " ."
}

// UpdateRequest accumulates one or more SPARQL UPDATE operations that are
// submitted to the store as a single request.
type UpdateRequest struct {
	prefixes   []Prefix
	operations []string
}

func NewUpdateRequest(prefixes ...Prefix) *UpdateRequest {
	return &UpdateRequest{prefixes: prefixes}
}

// InsertData appends an INSERT DATA operation with the supplied triples.
func (u *UpdateRequest) InsertData(triples ...TriplePattern) *UpdateRequest {
	var sb strings.Builder

	sb.WriteString("INSERT DATA {\n")
	for _, t := range triples {
		sb.WriteString("\t" + t.String() + "\n")
	}
	sb.WriteString("}")

	u.operations = append(u.operations, sb.String())
	return u
}

// DeleteWhere appends a DELETE WHERE operation with the supplied patterns.
func (u *UpdateRequest) DeleteWhere(patterns ...TriplePattern) *UpdateRequest {
	var sb strings.Builder

	sb.WriteString("DELETE WHERE {\n")
	for _, p := range patterns {
		sb.WriteString("\t" + p.String() + "\n")
	}
	sb.WriteString("}")

	u.operations = append(u.operations, sb.String())
	return u
}

// String renders the prefix block followed by the accumulated operations,
// separated by semicolons as required by SPARQL 1.1 Update.
func (u *UpdateRequest) String() string {
	var sb strings.Builder

	for _, p := range u.prefixes {
		sb.WriteString(p.String() + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(strings.Join(u.operations, " ;\n"))

	return sb.String()
}
