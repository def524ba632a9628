package cryptocurrencies

import (
	"fmt"
	"strings"

	"github.com/cryk/graph-services/pkg/datamodels/doacc"
	"github.com/cryk/graph-services/pkg/graphql/errors"
	"github.com/cryk/graph-services/pkg/sparql"
)

const (
	DefaultLimit  int = 10
	DefaultOffset int = 0

	SortOrderAscending  string = "ASC"
	SortOrderDescending string = "DESC"
)

// QueryParams carries the filter, sort and pagination arguments of a
// cryptocurrencies query.
type QueryParams struct {
	Limit      int      `json:"limit"`
	Offset     int      `json:"offset"`
	SearchText []string `json:"searchText"`
	SortOrder  string   `json:"sortOrder"`
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate"`
}

// InfoParams carries the filter arguments of a cryptocurrenciesInfo query.
type InfoParams struct {
	SearchText []string `json:"searchText"`
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate"`
}

var queryPrefixes = []sparql.Prefix{
	doacc.PrefixDOACC,
	sparql.PrefixRDF,
	sparql.PrefixXsd,
	doacc.PrefixElements,
	doacc.PrefixSchema,
}

func prefixBlock() string {
	var sb strings.Builder
	for _, p := range queryPrefixes {
		sb.WriteString(p.String() + "\n")
	}
	return sb.String()
}

// optionalFieldPatterns renders one OPTIONAL block plus a COALESCE
// fallback per nullable field, so that absent values surface as the
// sentinel each field is documented with instead of dropping the row.
func optionalFieldPatterns(subject string) string {
	fields := []struct {
		predicate string
		variable  string
		fallback  string
	}{
		{"elements:description", "Description", sparql.Literal(doacc.UnsetDescription).String()},
		{"doacc:block-reward", "BlockReward", sparql.Literal(doacc.UnsetBlockReward).String()},
		{"doacc:block-time", "BlockTime", sparql.Integer(int64(doacc.UnsetBlockTime)).String()},
		{"doacc:total-coins", "TotalCoins", sparql.Literal(doacc.UnsetTotalCoins).String()},
		{"doacc:incept", "DateFounded", sparql.Literal(doacc.UnsetDateFounded).String()},
		{"doacc:source", "Source", sparql.Literal(doacc.UnsetSource).String()},
		{"doacc:website", "Website", sparql.Literal(doacc.UnsetWebsite).String()},
	}

	var sb strings.Builder

	for _, f := range fields {
		sb.WriteString(fmt.Sprintf("    OPTIONAL { %s %s ?temp%s } .\n", subject, f.predicate, f.variable))
	}

	sb.WriteString("\n")

	for _, f := range fields {
		variable := strings.ToLower(f.variable[:1]) + f.variable[1:]
		sb.WriteString(fmt.Sprintf("    BIND(COALESCE(?temp%s, %s) AS ?%s) .\n", f.variable, f.fallback, variable))
	}

	return sb.String()
}

func schemePatterns() string {
	unset := sparql.Literal(doacc.UnsetDescription).String()

	return fmt.Sprintf(`    OPTIONAL { ?protectionSchemeId elements:description ?tempProtectionSchemeDescription } .
    BIND(COALESCE(?tempProtectionSchemeDescription, %[1]s) AS ?protectionSchemeDescription) .

    OPTIONAL { ?distributionSchemeId elements:description ?tempDistributionSchemeDescription } .
    BIND(COALESCE(?tempDistributionSchemeDescription, %[1]s) AS ?distributionSchemeDescription) .
`, unset)
}

// selectCryptocurrencyByID builds the single entity lookup, including the
// price history join that the list query leaves out.
func selectCryptocurrencyByID(id string) (string, error) {
	subject, err := sparql.PrefixedName(doacc.PrefixDOACC.Label, id)
	if err != nil {
		return "", err
	}

	query := prefixBlock() + fmt.Sprintf(`
SELECT ?id ?symbol ?description ?blockReward ?blockTime ?totalCoins ?dateFounded ?source ?website ?protectionSchemeDescription ?distributionSchemeDescription ?priceDataId ?priceTimestamp ?priceValue ?priceCurrency
WHERE {
    %[1]s rdf:type                  doacc:Cryptocurrency  ;
          doacc:symbol              ?symbol               ;
          doacc:protection-scheme   ?protectionSchemeId   ;
          doacc:distribution-scheme ?distributionSchemeId .

%[2]s
    BIND(%[3]s AS ?id) .

%[4]s
    OPTIONAL {
        %[1]s doacc:hadPrice ?priceDataId .
        ?priceDataId schema:datePosted ?priceTimestamp ;
                     schema:value      ?priceValue     ;
                     schema:currency   ?priceCurrency  .
    }
}`, subject, optionalFieldPatterns(subject.String()), sparql.Literal(id), schemePatterns())

	return query, nil
}

// selectCryptocurrencies builds the list query over all cryptocurrencies.
func selectCryptocurrencies(params QueryParams) (string, error) {
	filter, err := filterPatterns(params.SearchText, params.StartDate, params.EndDate)
	if err != nil {
		return "", err
	}

	order, err := orderClause(params.SortOrder)
	if err != nil {
		return "", err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	offset := params.Offset
	if offset < 0 {
		offset = DefaultOffset
	}

	query := prefixBlock() + fmt.Sprintf(`
SELECT ?id ?symbol ?description ?blockReward ?blockTime ?totalCoins ?dateFounded ?source ?website ?protectionSchemeDescription ?distributionSchemeDescription
WHERE {
    ?idWithPrefix rdf:type                  doacc:Cryptocurrency  ;
                  doacc:symbol              ?symbol               ;
                  doacc:protection-scheme   ?protectionSchemeId   ;
                  doacc:distribution-scheme ?distributionSchemeId .

%s
    BIND(STRAFTER(STR(?idWithPrefix), %s) AS ?id) .

%s%s}
%s
LIMIT %d
OFFSET %d`,
		optionalFieldPatterns("?idWithPrefix"),
		sparql.Literal(doacc.Namespace),
		schemePatterns(),
		filter,
		order,
		limit,
		offset,
	)

	return query, nil
}

// countCryptocurrencies builds the aggregate count under the same filter
// predicate as the list query.
func countCryptocurrencies(params InfoParams) (string, error) {
	filter, err := filterPatterns(params.SearchText, params.StartDate, params.EndDate)
	if err != nil {
		return "", err
	}

	query := prefixBlock() + fmt.Sprintf(`
SELECT (COUNT(DISTINCT ?idWithPrefix) AS ?totalCount)
WHERE {
    ?idWithPrefix rdf:type     doacc:Cryptocurrency ;
                  doacc:symbol ?symbol              .
%s}`, filter)

	return query, nil
}

// askCryptocurrencyExists builds the existence check used before updates.
func askCryptocurrencyExists(id string) (string, error) {
	subject, err := sparql.PrefixedName(doacc.PrefixDOACC.Label, id)
	if err != nil {
		return "", err
	}

	return prefixBlock() + fmt.Sprintf(`
ASK {
    %s rdf:type doacc:Cryptocurrency .
}`, subject), nil
}

// filterPatterns renders the shared list/count filter: an OR over
// case-insensitive symbol substring matches, and an inclusive founding
// date range.
func filterPatterns(searchText []string, startDate, endDate string) (string, error) {
	var sb strings.Builder

	conditions := make([]string, 0, len(searchText))
	for _, token := range searchText {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		conditions = append(conditions,
			fmt.Sprintf("CONTAINS(LCASE(STR(?symbol)), %s)", sparql.Literal(strings.ToLower(token))),
		)
	}

	if len(conditions) > 0 {
		sb.WriteString(fmt.Sprintf("    FILTER(%s) .\n", strings.Join(conditions, " || ")))
	}

	if startDate != "" || endDate != "" {
		bounds := make([]string, 0, 2)

		if startDate != "" {
			from, err := sparql.ParseDate(startDate)
			if err != nil {
				return "", err
			}
			bounds = append(bounds, fmt.Sprintf("?foundedDate >= %s", from))
		}

		if endDate != "" {
			to, err := sparql.ParseDate(endDate)
			if err != nil {
				return "", err
			}
			bounds = append(bounds, fmt.Sprintf("?foundedDate <= %s", to))
		}

		sb.WriteString("    ?idWithPrefix doacc:incept ?foundedDate .\n")
		sb.WriteString(fmt.Sprintf("    FILTER(%s) .\n", strings.Join(bounds, " && ")))
	}

	return sb.String(), nil
}

func orderClause(sortOrder string) (string, error) {
	switch sortOrder {
	case "", SortOrderDescending:
		return "ORDER BY DESC(?symbol)", nil
	case SortOrderAscending:
		return "ORDER BY ASC(?symbol)", nil
	}

	return "", errors.NewValidationError(fmt.Sprintf("sort order must be %s or %s, not %q", SortOrderAscending, SortOrderDescending, sortOrder))
}
