package catalog

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/dalemusser/researchhub/internal/app/store/content"
	"github.com/dalemusser/researchhub/internal/app/system/normalize"
)

// maxLimit caps the limit a client may request.
const maxLimit = 500

// ParseParams reads the content query parameters from a query string:
// category, status, featured, sort_by, sort_order, limit.
func ParseParams(q url.Values) (content.Params, error) {
	p := content.Params{
		Category: strings.TrimSpace(q.Get("category")),
		Status:   normalize.Enum(q.Get("status")),
		SortBy:   strings.TrimSpace(q.Get("sort_by")),
	}
	if p.SortBy != "" {
		p.SortOrder = normalize.SortOrder(q.Get("sort_order"))
	}

	if raw := q.Get("featured"); raw != "" {
		b, ok := normalize.Bool(raw)
		if !ok {
			return content.Params{}, fmt.Errorf("featured must be true or false, got %q", raw)
		}
		p.Featured = &b
	}

	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return content.Params{}, fmt.Errorf("limit must be a positive integer, got %q", raw)
		}
		if n > maxLimit {
			n = maxLimit
		}
		p.Limit = n
	}
	return p, nil
}
