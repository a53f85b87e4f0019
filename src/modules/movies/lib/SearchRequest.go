package movies

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// SearchFilters carries one search worth of optional filters. A zero value (or
// empty slice / empty string) means "no constraint" for that field.
type SearchFilters struct {
	GenresIncluded   []int64 `json:"genres_included"`
	GenresExcluded   []int64 `json:"genres_excluded"`
	KeywordsIncluded []int64 `json:"keywords_included"`
	KeywordsExcluded []int64 `json:"keywords_excluded"`
	Actors           []int64 `json:"actors"`
	Director         *int64  `json:"director"`
	TitlePart        string  `json:"title_part"`
	Country          string  `json:"country"`
	ReleaseDateGte   string  `json:"release_date_gte"`
	ReleaseDateLte   string  `json:"release_date_lte"`
	OrderBy          string  `json:"order_by"`
	OrderDir         string  `json:"order_dir"`
}

// OrderColumns whitelists the sortable columns; OrderDirections the directions.
// Anything else is rejected before the statement is built.
var OrderColumns = map[string]bool{
	"":             true, // defaults to release_date
	"rating":       true,
	"release_date": true,
	"revenue":      true,
}

var OrderDirections = map[string]bool{
	"":     true, // defaults to DESC
	"ASC":  true,
	"DESC": true,
}

// Validate rejects malformed filters before they reach the datastore.
func (f SearchFilters) Validate() error {
	for _, set := range map[string][]int64{
		"genres_included":   f.GenresIncluded,
		"genres_excluded":   f.GenresExcluded,
		"keywords_included": f.KeywordsIncluded,
		"keywords_excluded": f.KeywordsExcluded,
		"actors":            f.Actors,
	} {
		for _, id := range set {
			if id <= 0 {
				return &InvalidFilterError{Field: "tag set", Reason: fmt.Sprintf("id %d is not a positive integer", id)}
			}
		}
	}
	if f.Director != nil && *f.Director <= 0 {
		return &InvalidFilterError{Field: "director", Reason: "id must be a positive integer"}
	}
	if f.Country != "" && len(f.Country) != 2 {
		return &InvalidFilterError{Field: "country", Reason: "expected an alpha-2 code"}
	}
	for field, val := range map[string]string{
		"release_date_gte": f.ReleaseDateGte,
		"release_date_lte": f.ReleaseDateLte,
	} {
		if val == "" {
			continue
		}
		if _, err := time.Parse(DateLayout, val); err != nil {
			return &InvalidFilterError{Field: field, Reason: "expected YYYY-MM-DD"}
		}
	}
	if !OrderColumns[f.OrderBy] {
		return &InvalidFilterError{Field: "order_by", Reason: fmt.Sprintf("unknown sort key %q", f.OrderBy)}
	}
	if !OrderDirections[f.OrderDir] {
		return &InvalidFilterError{Field: "order_dir", Reason: fmt.Sprintf("unknown sort direction %q", f.OrderDir)}
	}
	return nil
}

// DateRange returns both bounds when both were supplied. A lone bound does not
// constitute a range and is ignored, matching the documented search semantics.
func (f SearchFilters) DateRange() (gte, lte time.Time, ok bool) {
	if f.ReleaseDateGte == "" || f.ReleaseDateLte == "" {
		return time.Time{}, time.Time{}, false
	}
	gte, errG := time.Parse(DateLayout, f.ReleaseDateGte)
	lte, errL := time.Parse(DateLayout, f.ReleaseDateLte)
	if errG != nil || errL != nil {
		return time.Time{}, time.Time{}, false
	}
	return gte, lte, true
}
