package cryptocurrencies

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/cryk/graph-services/pkg/datamodels/doacc"
	"github.com/cryk/graph-services/pkg/graphql/errors"
	"github.com/cryk/graph-services/pkg/sparql"
)

// mustTerm renders a prefixed name from trusted, compile-time constants.
func mustTerm(prefix, local string) sparql.Term {
	t, err := sparql.PrefixedName(prefix, local)
	if err != nil {
		panic(err)
	}
	return t
}

var rdfType = mustTerm(sparql.PrefixRDF.Label, "type")

func doaccTerm(local string) sparql.Term {
	return mustTerm(doacc.PrefixDOACC.Label, local)
}

// iriFromURL validates an untrusted URL before it is embedded as an IRI.
func iriFromURL(raw string) (sparql.Term, error) {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return sparql.Term{}, errors.NewValidationError(fmt.Sprintf("%q is not a valid http(s) url", raw))
	}

	return sparql.IRIRef(raw)
}

type fieldTriple struct {
	predicate sparql.Term
	object    sparql.Term
}

// createFieldTriples collects one (predicate, object) pair per non-empty
// optional field of the input. Absent fields are omitted entirely.
func createFieldTriples(input doacc.CreateCryptocurrencyInput) ([]fieldTriple, error) {
	var triples []fieldTriple

	if input.Description != "" {
		triples = append(triples, fieldTriple{mustTerm(doacc.PrefixElements.Label, "description"), sparql.LangLiteral(input.Description, "en")})
	}

	if input.BlockReward != "" {
		triples = append(triples, fieldTriple{doaccTerm("block-reward"), sparql.TypedLiteral(input.BlockReward, sparql.XsdString)})
	}

	if input.BlockTime != nil {
		triples = append(triples, fieldTriple{doaccTerm("block-time"), sparql.Integer(int64(*input.BlockTime))})
	}

	if input.TotalCoins != "" {
		triples = append(triples, fieldTriple{doaccTerm("total-coins"), sparql.TypedLiteral(input.TotalCoins, sparql.XsdString)})
	}

	if input.DateFounded != "" {
		founded, err := sparql.ParseDate(input.DateFounded)
		if err != nil {
			return nil, err
		}
		triples = append(triples, fieldTriple{doaccTerm("incept"), founded})
	}

	if input.Source != "" {
		source, err := iriFromURL(input.Source)
		if err != nil {
			return nil, err
		}
		triples = append(triples, fieldTriple{doaccTerm("source"), source})
	}

	if input.Website != "" {
		website, err := iriFromURL(input.Website)
		if err != nil {
			return nil, err
		}
		triples = append(triples, fieldTriple{doaccTerm("website"), website})
	}

	return triples, nil
}

// insertCryptocurrency builds the INSERT DATA mutation for a new entity:
// the type triple, the required symbol, the default scheme references,
// and one triple per non-empty optional field.
func insertCryptocurrency(id string, input doacc.CreateCryptocurrencyInput) (string, error) {
	if strings.TrimSpace(input.Symbol) == "" {
		return "", errors.NewValidationError("symbol must not be empty")
	}

	subject, err := sparql.PrefixedName(doacc.PrefixDOACC.Label, id)
	if err != nil {
		return "", err
	}

	fields, err := createFieldTriples(input)
	if err != nil {
		return "", err
	}

	triples := []sparql.TriplePattern{
		{Subject: subject, Predicate: rdfType, Object: doaccTerm(doacc.CryptocurrencyTypeName)},
		{Subject: subject, Predicate: doaccTerm("symbol"), Object: sparql.LangLiteral(input.Symbol, "en")},
		{Subject: subject, Predicate: doaccTerm("protection-scheme"), Object: doaccTerm(doacc.DefaultProtectionSchemeID)},
		{Subject: subject, Predicate: doaccTerm("distribution-scheme"), Object: doaccTerm(doacc.DefaultDistributionSchemeID)},
	}

	for _, f := range fields {
		triples = append(triples, sparql.TriplePattern{Subject: subject, Predicate: f.predicate, Object: f.object})
	}

	return sparql.NewUpdateRequest(queryPrefixes...).InsertData(triples...).String(), nil
}

// updateFieldTriples collects the (predicate, object) pairs for the
// fields present in a partial update. Nil fields stay untouched.
func updateFieldTriples(input doacc.UpdateCryptocurrencyInput) ([]fieldTriple, error) {
	var triples []fieldTriple

	if input.Description != nil {
		triples = append(triples, fieldTriple{mustTerm(doacc.PrefixElements.Label, "description"), sparql.LangLiteral(*input.Description, "en")})
	}

	if input.BlockReward != nil {
		triples = append(triples, fieldTriple{doaccTerm("block-reward"), sparql.TypedLiteral(*input.BlockReward, sparql.XsdString)})
	}

	if input.BlockTime != nil {
		triples = append(triples, fieldTriple{doaccTerm("block-time"), sparql.Integer(int64(*input.BlockTime))})
	}

	if input.TotalCoins != nil {
		triples = append(triples, fieldTriple{doaccTerm("total-coins"), sparql.TypedLiteral(*input.TotalCoins, sparql.XsdString)})
	}

	if input.DateFounded != nil {
		founded, err := sparql.ParseDate(*input.DateFounded)
		if err != nil {
			return nil, err
		}
		triples = append(triples, fieldTriple{doaccTerm("incept"), founded})
	}

	if input.Source != nil {
		source, err := iriFromURL(*input.Source)
		if err != nil {
			return nil, err
		}
		triples = append(triples, fieldTriple{doaccTerm("source"), source})
	}

	if input.Website != nil {
		website, err := iriFromURL(*input.Website)
		if err != nil {
			return nil, err
		}
		triples = append(triples, fieldTriple{doaccTerm("website"), website})
	}

	return triples, nil
}

// updateCryptocurrency builds the partial update mutation: one DELETE
// WHERE per supplied field followed by a single INSERT DATA, submitted
// as one request. Fields absent from the input are left untouched.
func updateCryptocurrency(input doacc.UpdateCryptocurrencyInput) (string, error) {
	subject, err := sparql.PrefixedName(doacc.PrefixDOACC.Label, input.ID)
	if err != nil {
		return "", err
	}

	fields, err := updateFieldTriples(input)
	if err != nil {
		return "", err
	}

	if len(fields) == 0 {
		return "", errors.NewValidationError("update must supply at least one field")
	}

	request := sparql.NewUpdateRequest(queryPrefixes...)

	inserts := make([]sparql.TriplePattern, 0, len(fields))
	for _, f := range fields {
		request.DeleteWhere(sparql.TriplePattern{Subject: subject, Predicate: f.predicate, Object: sparql.Var("old")})
		inserts = append(inserts, sparql.TriplePattern{Subject: subject, Predicate: f.predicate, Object: f.object})
	}

	return request.InsertData(inserts...).String(), nil
}

// deleteCryptocurrency builds the mutation removing every triple whose
// subject is the entity id. Entities that merely reference the id keep
// their triples.
func deleteCryptocurrency(id string) (string, error) {
	subject, err := sparql.PrefixedName(doacc.PrefixDOACC.Label, id)
	if err != nil {
		return "", err
	}

	return sparql.NewUpdateRequest(doacc.PrefixDOACC).
		DeleteWhere(sparql.TriplePattern{Subject: subject, Predicate: sparql.Var("p"), Object: sparql.Var("o")}).
		String(), nil
}
