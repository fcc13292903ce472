package domain

import (
	"net/url"
	"strings"
)

// QueryParam is one constrained facet in a product query.
type QueryParam struct {
	Facet Facet
	Value string
}

// ProductQuery is the filter sent to the catalog's product search.
// Only non-empty facets appear; an absent facet is unconstrained.
type ProductQuery struct {
	Params []QueryParam
}

// IsEmpty returns true if the query constrains nothing.
func (q ProductQuery) IsEmpty() bool {
	return len(q.Params) == 0
}

// Get returns the value for a facet, or "" if it is unconstrained.
func (q ProductQuery) Get(f Facet) string {
	for _, p := range q.Params {
		if p.Facet == f {
			return p.Value
		}
	}
	return ""
}

// Values returns the query as url.Values.
func (q ProductQuery) Values() url.Values {
	v := make(url.Values, len(q.Params))
	for _, p := range q.Params {
		v.Set(p.Facet.String(), p.Value)
	}
	return v
}

// Encode renders the query string in canonical facet order.
// Unlike url.Values.Encode, keys are not sorted.
func (q ProductQuery) Encode() string {
	parts := make([]string, 0, len(q.Params))
	for _, p := range q.Params {
		parts = append(parts, url.QueryEscape(p.Facet.String())+"="+url.QueryEscape(p.Value))
	}
	return strings.Join(parts, "&")
}

// QueryFromValues builds a query from url.Values, keeping canonical order
// and dropping empty or unknown keys.
func QueryFromValues(values url.Values) ProductQuery {
	var q ProductQuery
	for _, f := range AllFacets() {
		if v := strings.TrimSpace(values.Get(f.String())); v != "" {
			q.Params = append(q.Params, QueryParam{Facet: f, Value: v})
		}
	}
	return q
}
