package query

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

type item struct {
	n     int
	text  string
	facet string
}

func (i item) SearchFields() []string { return []string{i.text} }
func (i item) Facet() string          { return i.facet }

func toItems(texts []string, facets []string) []item {
	out := make([]item, 0, len(texts))
	for i, s := range texts {
		f := ""
		if len(facets) > 0 {
			f = facets[i%len(facets)]
		}
		out = append(out, item{n: i, text: s, facet: f})
	}
	return out
}

func properties(t *testing.T) *gopter.Properties {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	return gopter.NewProperties(parameters)
}

func TestApplyIsDeterministic(t *testing.T) {
	props := properties(t)
	props.Property("same collection and query give the same page", prop.ForAll(
		func(texts []string, search string, page int, size int) bool {
			items := toItems(texts, []string{"a", "b"})
			q := Query{Search: search, Filter: "a", Page: page}
			return reflect.DeepEqual(Apply(items, q, size), Apply(items, q, size))
		},
		gen.SliceOf(gen.AlphaString()),
		gen.AlphaString(),
		gen.IntRange(-2, 10),
		gen.IntRange(1, 7),
	))
	props.TestingRun(t)
}

func TestFilterPredicatesCommute(t *testing.T) {
	props := properties(t)
	props.Property("search then filter equals filter then search equals both", prop.ForAll(
		func(texts []string, search string, facet string) bool {
			items := toItems(texts, []string{"x", "y", "z"})
			both := Filter(items, Query{Search: search, Filter: facet})
			searchFirst := Filter(Filter(items, Query{Search: search}), Query{Filter: facet})
			filterFirst := Filter(Filter(items, Query{Filter: facet}), Query{Search: search})
			return reflect.DeepEqual(both, searchFirst) && reflect.DeepEqual(both, filterFirst)
		},
		gen.SliceOf(gen.AlphaString()),
		gen.AlphaString(),
		gen.OneConstOf("", "x", "y", "z"),
	))
	props.TestingRun(t)
}

func TestPagesCoverFilteredSetOnce(t *testing.T) {
	props := properties(t)
	props.Property("concatenated pages reproduce the filtered sequence", prop.ForAll(
		func(texts []string, search string, size int) bool {
			items := toItems(texts, nil)
			q := Query{Search: search}
			filtered := Filter(items, q)

			first := Apply(items, Query{Search: search, Page: 1}, size)
			var all []item
			for p := 1; p <= first.TotalPages; p++ {
				pg := Apply(items, Query{Search: search, Page: p}, size)
				if pg.Page != p || len(pg.Items) == 0 || len(pg.Items) > size {
					return false
				}
				all = append(all, pg.Items...)
			}
			if len(filtered) == 0 {
				return first.TotalPages == 0 && len(all) == 0
			}
			return reflect.DeepEqual(filtered, all)
		},
		gen.SliceOf(gen.AlphaString()),
		gen.AlphaString(),
		gen.IntRange(1, 6),
	))
	props.TestingRun(t)
}
