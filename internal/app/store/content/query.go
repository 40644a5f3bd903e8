// internal/app/store/content/query.go
package content

import (
	"github.com/dalemusser/researchhub/internal/app/store/docstore"
	"github.com/dalemusser/researchhub/internal/app/store/registry"
)

// Params are the optional query parameters a consumer passes to Fetch.
// Zero values mean "not requested".
type Params struct {
	Category  string
	Status    string
	Featured  *bool
	SortBy    string
	SortOrder string // "asc" or "desc"; anything else is desc
	Limit     int    // <= 0 means no cap
}

// condition is one filter or sort directive, in precedence order.
type condition struct {
	filter *docstore.Filter
	sort   *docstore.Sort
}

// BuildQuery turns params into a store query for t.
//
// Types whose collections cannot serve combined filter+sort queries keep
// only the first requested condition, in the order category, status,
// featured, sort. The limit is always applied. The settings singleton is
// always read with a limit of one.
func BuildQuery(t registry.EntityType, p Params) docstore.Query {
	var conds []condition
	if p.Category != "" {
		conds = append(conds, condition{filter: &docstore.Filter{Field: "category", Value: p.Category}})
	}
	if p.Status != "" {
		conds = append(conds, condition{filter: &docstore.Filter{Field: "status", Value: p.Status}})
	}
	if p.Featured != nil {
		conds = append(conds, condition{filter: &docstore.Filter{Field: "is_featured", Value: *p.Featured}})
	}
	if p.SortBy != "" {
		dir := docstore.Descending
		if p.SortOrder == "asc" {
			dir = docstore.Ascending
		}
		conds = append(conds, condition{sort: &docstore.Sort{Field: p.SortBy, Direction: dir}})
	}

	if registry.SingleCondition(t) && len(conds) > 1 {
		conds = conds[:1]
	}

	var q docstore.Query
	for _, c := range conds {
		if c.filter != nil {
			q.Filters = append(q.Filters, *c.filter)
		}
		if c.sort != nil {
			q.Sort = c.sort
		}
	}
	if p.Limit > 0 {
		q.Limit = p.Limit
	}
	if t == registry.Settings {
		q.Limit = 1
	}
	return q
}

// conditionCount reports how many filter/sort directives p requests.
func (p Params) conditionCount() int {
	n := 0
	if p.Category != "" {
		n++
	}
	if p.Status != "" {
		n++
	}
	if p.Featured != nil {
		n++
	}
	if p.SortBy != "" {
		n++
	}
	return n
}
