package sparql

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/cryk/graph-services/pkg/graphql/errors"
)

// Term is a single RDF term (or variable) rendered in its SPARQL lexical
// form, safe for embedding in query text. Terms are only constructed
// through the functions in this package, which validate or escape the
// untrusted values they are given.
type Term struct {
	text string
}

func (t Term) String() string {
	return t.text
}

var localNameExpr = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)
var prefixLabelExpr = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*$`)
var variableNameExpr = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// IRIRef validates an absolute IRI and renders it as <iri>.
func IRIRef(iri string) (Term, error) {
	if iri == "" {
		return Term{}, errors.NewValidationError("iri must not be empty")
	}

	if !strings.Contains(iri, ":") {
		return Term{}, errors.NewValidationError(fmt.Sprintf("%q is not an absolute iri", iri))
	}

	if strings.ContainsAny(iri, "<>\"{}|^`\\ \t\n\r") {
		return Term{}, errors.NewValidationError(fmt.Sprintf("%q contains characters that are not allowed in an iri", iri))
	}

	for _, r := range iri {
		if r < 0x20 {
			return Term{}, errors.NewValidationError("iri contains control characters")
		}
	}

	return Term{text: "<" + iri + ">"}, nil
}

// PrefixedName renders prefix:local after checking both parts against a
// strict allow list. Entity identifiers end up here, so anything that
// could break out of the name position is rejected.
func PrefixedName(prefix, local string) (Term, error) {
	if !prefixLabelExpr.MatchString(prefix) {
		return Term{}, errors.NewValidationError(fmt.Sprintf("%q is not a valid prefix label", prefix))
	}

	if !localNameExpr.MatchString(local) {
		return Term{}, errors.NewValidationError(fmt.Sprintf("%q is not a valid local name", local))
	}

	return Term{text: prefix + ":" + local}, nil
}

// Var renders a ?variable. The name is taken from code, never from user
// input, so an invalid name is a programming error.
func Var(name string) Term {
	if !variableNameExpr.MatchString(name) {
		panic(fmt.Sprintf("%q is not a valid variable name", name))
	}

	return Term{text: "?" + name}
}

// Literal renders an escaped plain string literal.
func Literal(value string) Term {
	return Term{text: `"` + literalEscaper.Replace(value) + `"`}
}

// LangLiteral renders an escaped string literal with a language tag.
func LangLiteral(value, lang string) Term {
	return Term{text: `"` + literalEscaper.Replace(value) + `"@` + lang}
}

// TypedLiteral renders an escaped literal with the supplied datatype IRI.
func TypedLiteral(value, datatype string) Term {
	return Term{text: `"` + literalEscaper.Replace(value) + `"^^<` + datatype + `>`}
}

// Integer renders a plain integer literal.
func Integer(value int64) Term {
	return Term{text: fmt.Sprintf("%d", value)}
}

// Date renders an xsd:date literal for the supplied time.
func Date(t time.Time) Term {
	return TypedLiteral(t.Format("2006-01-02"), XsdDate)
}

// ParseDate validates a YYYY-MM-DD date string and renders it as an
// xsd:date literal. Unparseable dates fail with a validation error
// before any query is issued.
func ParseDate(value string) (Term, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return Term{}, errors.NewValidationError(fmt.Sprintf("%q is not a valid date on the form YYYY-MM-DD", value))
	}

	return Date(t), nil
}

const (
	RDFNamespace string = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	XsdNamespace string = "http://www.w3.org/2001/XMLSchema#"

	XsdDate     string = XsdNamespace + "date"
	XsdDateTime string = XsdNamespace + "dateTime"
	XsdDecimal  string = XsdNamespace + "decimal"
	XsdInteger  string = XsdNamespace + "integer"
	XsdString   string = XsdNamespace + "string"
)

// Prefix binds a prefix label to a namespace IRI for use in query text.
type Prefix struct {
	Label     string
	Namespace string
}

func (p Prefix) String() string {
	return fmt.Sprintf("PREFIX %s: <%s>", p.Label, p.Namespace)
}

var PrefixRDF = Prefix{Label: "rdf", Namespace: RDFNamespace}
var PrefixXsd = Prefix{Label: "xsd", Namespace: XsdNamespace}
