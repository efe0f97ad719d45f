package api

import (
	"net/url"
	"strconv"
	"strings"
)

// FilterAll is the sentinel filter value meaning "no constraint".
// Filters set to it are stripped from outgoing requests.
const FilterAll = "all"

// ListQuery carries the pagination, search and filter state of one
// list request.
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	Filters map[string]string
}

// Values renders the query as URL parameters. Page and per_page are
// always present; search only when non-empty; a filter only when its
// value is neither empty nor the "all" sentinel.
func (q ListQuery) Values() url.Values {
	page := q.Page
	if page < 1 {
		page = 1
	}
	perPage := q.PerPage
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	values := url.Values{}
	values.Set("page", strconv.Itoa(page))
	values.Set("per_page", strconv.Itoa(perPage))
	if search := strings.TrimSpace(q.Search); search != "" {
		values.Set("search", search)
	}
	for key, value := range q.Filters {
		value = strings.TrimSpace(value)
		if key == "" || value == "" || value == FilterAll {
			continue
		}
		values.Set(key, value)
	}
	return values
}

// DefaultPerPage matches the page size the dashboards request.
const DefaultPerPage = 15
