package catalog

import (
	"cmp"
	"fmt"
	"sort"

	"github.com/dalemusser/researchhub/internal/app/store/content"
	"github.com/dalemusser/researchhub/internal/app/store/docstore"
	"github.com/dalemusser/researchhub/internal/domain/models"
)

// publishedParams is the store query for a type with drafts: status is the
// single condition the store applies, the rest is done by refine.
var publishedParams = content.Params{Status: models.NewsPublished}

// refine keeps the published documents of docs that match p, sorted and
// capped per p.
func refine(docs []docstore.Document, p content.Params) []docstore.Document {
	out := make([]docstore.Document, 0, len(docs))
	for _, d := range docs {
		if d["status"] != models.NewsPublished {
			continue
		}
		if p.Category != "" && d["category"] != p.Category {
			continue
		}
		if p.Featured != nil {
			if f, _ := d["is_featured"].(bool); f != *p.Featured {
				continue
			}
		}
		out = append(out, d)
	}

	if p.SortBy != "" {
		desc := p.SortOrder != "asc"
		sort.SliceStable(out, func(i, j int) bool {
			c := compareValues(out[i][p.SortBy], out[j][p.SortBy])
			if desc {
				return c > 0
			}
			return c < 0
		})
	}
	if p.Limit > 0 && len(out) > p.Limit {
		out = out[:p.Limit]
	}
	return out
}

// compareValues orders nil first, then numbers, bools and strings by value.
// Values of different kinds compare by their text.
func compareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	if x, ok := number(a); ok {
		if y, ok := number(b); ok {
			return cmp.Compare(x, y)
		}
	}
	if x, ok := a.(bool); ok {
		if y, ok := b.(bool); ok {
			return cmp.Compare(boolRank(x), boolRank(y))
		}
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

