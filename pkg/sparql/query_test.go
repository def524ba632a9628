package sparql

import (
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestTriplePatternRendersStatement(t *testing.T) {
	is := is.New(t)

	subject, _ := PrefixedName("doacc", "abc")
	predicate, _ := PrefixedName("doacc", "symbol")

	pattern := TriplePattern{Subject: subject, Predicate: predicate, Object: LangLiteral("BTC", "en")}

	is.Equal(pattern.String(), `doacc:abc doacc:symbol "BTC"@en .`)
}

func TestUpdateRequestRendersPrefixBlock(t *testing.T) {
	is := is.New(t)

	subject, _ := PrefixedName("rdf", "nil")

	update := NewUpdateRequest(PrefixRDF).
		InsertData(TriplePattern{Subject: subject, Predicate: Var("p"), Object: Literal("x")}).
		String()

	is.True(strings.HasPrefix(update, "PREFIX rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#>"))
	is.True(strings.Contains(update, "INSERT DATA {"))
}

func TestUpdateRequestChainsOperationsWithSemicolons(t *testing.T) {
	is := is.New(t)

	subject, _ := PrefixedName("doacc", "abc")
	predicate, _ := PrefixedName("doacc", "symbol")

	update := NewUpdateRequest().
		DeleteWhere(TriplePattern{Subject: subject, Predicate: predicate, Object: Var("old")}).
		InsertData(TriplePattern{Subject: subject, Predicate: predicate, Object: LangLiteral("LTC", "en")}).
		String()

	deleteIdx := strings.Index(update, "DELETE WHERE {")
	sepIdx := strings.Index(update, "} ;")
	insertIdx := strings.Index(update, "INSERT DATA {")

	is.True(deleteIdx >= 0)
	is.True(sepIdx > deleteIdx)
	is.True(insertIdx > sepIdx)
}
