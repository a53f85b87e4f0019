package movies

import (
	"fmt"
	"strings"
	"time"

	"reelcollator/src/config"
	lib "reelcollator/src/modules/movies/lib"
	"reelcollator/src/utils"

	"github.com/lib/pq"
)

// searchBase aggregates each movie's tag ids into per-row sets so a movie comes
// back as a single row regardless of how many tags it carries. array_remove
// strips the NULL produced by LEFT JOIN misses on untagged movies.
const searchBase = `
SELECT m.id, m.name, m.overview, m.poster_link, m.release_date, m.release_country,
       m.rating, m.revenue, m.runtime, m.director_id,
       array_remove(array_agg(DISTINCT a.id), NULL) AS actors,
       array_remove(array_agg(DISTINCT g.id), NULL) AS genres,
       array_remove(array_agg(DISTINCT k.id), NULL) AS keywords
FROM movies m
LEFT JOIN movies_actors ma ON m.id = ma.movie_id
LEFT JOIN actors a ON ma.actor_id = a.id
LEFT JOIN movies_genres mg ON m.id = mg.movie_id
LEFT JOIN genres g ON mg.genre_id = g.id
LEFT JOIN movies_keywords mk ON m.id = mk.movie_id
LEFT JOIN keywords k ON mk.keyword_id = k.id
WHERE 1=1`

var orderColumns = map[string]string{
	"":             "m.release_date",
	"rating":       "m.rating",
	"release_date": "m.release_date",
	"revenue":      "m.revenue",
}

// BuildSearchQuery translates a sparse filter set into one parameterized SQL
// statement plus its ordered argument list. Every supplied filter contributes
// exactly one AND-ed predicate; user values only ever travel through the args.
func BuildSearchQuery(f lib.SearchFilters) (string, []interface{}, error) {
	if err := f.Validate(); err != nil {
		return "", nil, err
	}

	var conditions []string
	var args []interface{}

	if len(f.GenresIncluded) > 0 {
		conditions = append(conditions, "m.id IN (SELECT movie_id FROM movies_genres WHERE genre_id IN ?)")
		args = append(args, f.GenresIncluded)
	}
	if len(f.GenresExcluded) > 0 {
		conditions = append(conditions, "m.id NOT IN (SELECT movie_id FROM movies_genres WHERE genre_id IN ?)")
		args = append(args, f.GenresExcluded)
	}
	if len(f.KeywordsIncluded) > 0 {
		conditions = append(conditions, "m.id IN (SELECT movie_id FROM movies_keywords WHERE keyword_id IN ?)")
		args = append(args, f.KeywordsIncluded)
	}
	if len(f.KeywordsExcluded) > 0 {
		conditions = append(conditions, "m.id NOT IN (SELECT movie_id FROM movies_keywords WHERE keyword_id IN ?)")
		args = append(args, f.KeywordsExcluded)
	}
	if len(f.Actors) > 0 {
		conditions = append(conditions, "m.id IN (SELECT movie_id FROM movies_actors WHERE actor_id IN ?)")
		args = append(args, f.Actors)
	}
	if f.Director != nil {
		conditions = append(conditions, "m.director_id = ?")
		args = append(args, *f.Director)
	}
	if f.TitlePart != "" {
		conditions = append(conditions, "m.name ILIKE ?")
		args = append(args, "%"+f.TitlePart+"%")
	}
	if f.Country != "" {
		conditions = append(conditions, "m.release_country = ?")
		args = append(args, f.Country)
	}
	if gte, lte, ok := f.DateRange(); ok {
		conditions = append(conditions, "m.release_date BETWEEN ? AND ?")
		args = append(args, gte, lte)
	}

	query := searchBase
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " GROUP BY m.id"

	dir := f.OrderDir
	if dir == "" {
		dir = "DESC"
	}
	// order column and direction come from the whitelists, never from raw input
	query += fmt.Sprintf(" ORDER BY %s %s", orderColumns[f.OrderBy], dir)

	return query, args, nil
}

type searchRow struct {
	ID             int64
	Name           string
	Overview       string
	PosterLink     string
	ReleaseDate    time.Time
	ReleaseCountry string
	Rating         float64
	Revenue        int64
	Runtime        int
	DirectorID     *int64
	Actors         pq.Int64Array `gorm:"type:bigint[]"`
	Genres         pq.Int64Array `gorm:"type:bigint[]"`
	Keywords       pq.Int64Array `gorm:"type:bigint[]"`
}

func (r searchRow) toResult() lib.MovieResult {
	return lib.MovieResult{
		ID:             r.ID,
		Name:           r.Name,
		Overview:       r.Overview,
		PosterLink:     r.PosterLink,
		ReleaseDate:    utils.FormatDate(r.ReleaseDate),
		ReleaseCountry: r.ReleaseCountry,
		Rating:         utils.Round1(r.Rating),
		Revenue:        r.Revenue,
		Runtime:        r.Runtime,
		Director:       r.DirectorID,
		Actors:         r.Actors,
		Genres:         r.Genres,
		Keywords:       r.Keywords,
	}
}

// SearchMovies executes a filter set against the catalog. Zero rows is a valid
// outcome, returned as an empty slice rather than an error.
func SearchMovies(filters lib.SearchFilters) ([]lib.MovieResult, error) {
	query, args, err := BuildSearchQuery(filters)
	if err != nil {
		return nil, err
	}

	var rows []searchRow
	if err := config.DB.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, &lib.DatastoreUnavailableError{Op: "search", Err: err}
	}

	results := make([]lib.MovieResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, row.toResult())
	}
	return results, nil
}
