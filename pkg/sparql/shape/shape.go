// Package shape converts flat SPARQL binding rows into nested objects.
//
// A SELECT over a joined graph pattern comes back as one denormalized row
// per join combination. Shaping groups those rows by a primary key,
// collects the scalar columns that are constant within each group, and
// reconstructs nested child objects (schemes, price points, references)
// from the remaining columns. The result carries the same information as
// a JSON-LD framing of the underlying triples.
package shape

import (
	"github.com/cryk/graph-services/pkg/sparql"
)

// Definition declares how binding rows map onto one level of the nested
// object graph.
type Definition struct {
	// Root is the key under which a child collection is stored in its
	// parent object. Unused at the top level.
	Root string
	// GroupBy names the variable whose value identifies a group. Rows
	// where the variable is unbound do not contribute to this level.
	GroupBy string
	// Name is the object key that receives the grouping value.
	Name string
	// Collect names the scalar variables copied from the first row of
	// each group. Unbound variables are omitted, not errors.
	Collect []string
	// Children are shaped recursively from the rows of each group.
	Children []Definition
}

// Convert shapes rows according to def. It is a pure function of its
// inputs: no I/O, deterministic, and idempotent. Zero rows yield an
// empty collection. Groups appear in first-occurrence order of the
// input rows.
func Convert(rows []sparql.BindingRow, def Definition) []map[string]any {
	var order []string
	grouped := map[string][]sparql.BindingRow{}

	for _, row := range rows {
		key, ok := row.Str(def.GroupBy)
		if !ok {
			continue
		}

		if _, seen := grouped[key]; !seen {
			order = append(order, key)
		}

		grouped[key] = append(grouped[key], row)
	}

	result := make([]map[string]any, 0, len(order))

	for _, key := range order {
		groupRows := grouped[key]

		obj := map[string]any{def.Name: key}

		for _, name := range def.Collect {
			if value, ok := groupRows[0].Str(name); ok {
				obj[name] = value
			}
		}

		for _, child := range def.Children {
			children := Convert(groupRows, child)
			if len(children) > 0 {
				obj[child.Root] = children
			}
		}

		result = append(result, obj)
	}

	return result
}
