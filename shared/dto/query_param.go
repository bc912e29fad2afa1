package dto

import (
	"hostmaster/shared/constant"
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

var sortByPattern = regexp.MustCompile(`^[a-z_]+$`)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest reads page, limit, sort_by and sort_dir. Malformed values are ignored
// and limit is capped at constant.MaxValueLimit. With paginate set, missing page and
// limit fall back to constant.DefaultValuePage and constant.DefaultValueLimit.
func (q *QueryParams) FromRequest(r *http.Request, paginate bool) {
	query := r.URL.Query()

	q.Page = positiveInt(query.Get(constant.RequestParamPage), q.Page)
	q.Limit = min(positiveInt(query.Get(constant.RequestParamLimit), q.Limit), constant.MaxValueLimit)

	if sortBy := query.Get(constant.RequestParamSortBy); sortByPattern.MatchString(sortBy) {
		q.SortBy = sortBy
	}

	switch dir := strings.ToUpper(query.Get(constant.RequestParamSortDir)); dir {
	case SortDirAsc, SortDirDesc:
		q.SortDir = dir
	}

	if q.SortBy != "" && q.SortDir == "" {
		q.SortDir = SortDirAsc
	}

	if paginate {
		if q.Page == 0 {
			q.Page = constant.DefaultValuePage
		}

		if q.Limit == 0 {
			q.Limit = constant.DefaultValueLimit
		}
	}
}

// Offset is the number of rows skipped before the current page.
func (q QueryParams) Offset() int {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}

	return (q.Page - 1) * q.Limit
}

func positiveInt(value string, fallback int) int {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}

	return parsed
}
