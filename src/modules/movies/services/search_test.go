package movies

import (
	"errors"
	"strings"
	"testing"

	lib "reelcollator/src/modules/movies/lib"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64ptr(v int64) *int64 { return &v }

func TestBuildSearchQueryNoFilters(t *testing.T) {
	query, args, err := BuildSearchQuery(lib.SearchFilters{})
	require.NoError(t, err)

	assert.Empty(t, args)
	assert.NotContains(t, query, "AND m.id")
	assert.Contains(t, query, "GROUP BY m.id")
	assert.True(t, strings.HasSuffix(query, "ORDER BY m.release_date DESC"))
}

func TestBuildSearchQueryEmptySetsBehaveLikeOmitted(t *testing.T) {
	plain, plainArgs, err := BuildSearchQuery(lib.SearchFilters{})
	require.NoError(t, err)

	empty, emptyArgs, err := BuildSearchQuery(lib.SearchFilters{
		GenresIncluded:   []int64{},
		GenresExcluded:   []int64{},
		KeywordsIncluded: []int64{},
		KeywordsExcluded: []int64{},
		Actors:           []int64{},
	})
	require.NoError(t, err)

	assert.Equal(t, plain, empty)
	assert.Equal(t, plainArgs, emptyArgs)
}

func TestBuildSearchQueryAllFilters(t *testing.T) {
	query, args, err := BuildSearchQuery(lib.SearchFilters{
		GenresIncluded:   []int64{28, 12},
		GenresExcluded:   []int64{27},
		KeywordsIncluded: []int64{100},
		KeywordsExcluded: []int64{200},
		Actors:           []int64{500},
		Director:         int64ptr(77),
		TitlePart:        "matrix",
		Country:          "US",
		ReleaseDateGte:   "1999-01-01",
		ReleaseDateLte:   "2003-12-31",
		OrderBy:          "rating",
		OrderDir:         "ASC",
	})
	require.NoError(t, err)

	assert.Contains(t, query, "m.id IN (SELECT movie_id FROM movies_genres WHERE genre_id IN ?)")
	assert.Contains(t, query, "m.id NOT IN (SELECT movie_id FROM movies_genres WHERE genre_id IN ?)")
	assert.Contains(t, query, "m.id IN (SELECT movie_id FROM movies_keywords WHERE keyword_id IN ?)")
	assert.Contains(t, query, "m.id NOT IN (SELECT movie_id FROM movies_keywords WHERE keyword_id IN ?)")
	assert.Contains(t, query, "m.id IN (SELECT movie_id FROM movies_actors WHERE actor_id IN ?)")
	assert.Contains(t, query, "m.director_id = ?")
	assert.Contains(t, query, "m.name ILIKE ?")
	assert.Contains(t, query, "m.release_country = ?")
	assert.Contains(t, query, "m.release_date BETWEEN ? AND ?")
	assert.True(t, strings.HasSuffix(query, "ORDER BY m.rating ASC"))

	// one arg slot per predicate, in predicate order
	require.Len(t, args, 10)
	assert.Equal(t, []int64{28, 12}, args[0])
	assert.Equal(t, []int64{27}, args[1])
	assert.Equal(t, []int64{100}, args[2])
	assert.Equal(t, []int64{200}, args[3])
	assert.Equal(t, []int64{500}, args[4])
	assert.Equal(t, int64(77), args[5])
	assert.Equal(t, "%matrix%", args[6])
	assert.Equal(t, "US", args[7])
}

func TestBuildSearchQueryTitleWildcards(t *testing.T) {
	query, args, err := BuildSearchQuery(lib.SearchFilters{TitlePart: "MATRIX"})
	require.NoError(t, err)

	// case-insensitivity comes from ILIKE, the wildcards from wrapping
	assert.Contains(t, query, "m.name ILIKE ?")
	require.Len(t, args, 1)
	assert.Equal(t, "%MATRIX%", args[0])
}

func TestBuildSearchQueryLoneDateBoundIgnored(t *testing.T) {
	for _, f := range []lib.SearchFilters{
		{ReleaseDateGte: "1999-01-01"},
		{ReleaseDateLte: "2003-12-31"},
	} {
		query, args, err := BuildSearchQuery(f)
		require.NoError(t, err)
		assert.NotContains(t, query, "BETWEEN")
		assert.Empty(t, args)
	}
}

func TestBuildSearchQueryValidation(t *testing.T) {
	cases := map[string]lib.SearchFilters{
		"negative tag id":  {GenresIncluded: []int64{-1}},
		"zero actor id":    {Actors: []int64{0}},
		"bad director":     {Director: int64ptr(0)},
		"bad country code": {Country: "USA"},
		"bad date":         {ReleaseDateGte: "not-a-date", ReleaseDateLte: "2020-01-01"},
		"bad order column": {OrderBy: "popularity"},
		"bad order dir":    {OrderDir: "SIDEWAYS"},
		"injection order":  {OrderBy: "rating; DROP TABLE movies"},
	}
	for name, filters := range cases {
		_, _, err := BuildSearchQuery(filters)
		require.Error(t, err, name)

		var invalid *lib.InvalidFilterError
		assert.True(t, errors.As(err, &invalid), name)
	}
}

func TestBuildSearchQueryOrderDefaults(t *testing.T) {
	query, _, err := BuildSearchQuery(lib.SearchFilters{OrderBy: "revenue"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(query, "ORDER BY m.revenue DESC"))

	query, _, err = BuildSearchQuery(lib.SearchFilters{OrderDir: "ASC"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(query, "ORDER BY m.release_date ASC"))
}

func TestDateRangeRequiresBothBounds(t *testing.T) {
	_, _, ok := lib.SearchFilters{ReleaseDateGte: "2000-01-01"}.DateRange()
	assert.False(t, ok)

	gte, lte, ok := lib.SearchFilters{
		ReleaseDateGte: "2000-01-01",
		ReleaseDateLte: "2001-01-01",
	}.DateRange()
	require.True(t, ok)
	assert.True(t, gte.Before(lte))
}
