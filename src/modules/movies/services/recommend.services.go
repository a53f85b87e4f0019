package movies

import (
	"sort"
	"strings"
	"time"

	"reelcollator/src/config"
	lib "reelcollator/src/modules/movies/lib"
	models "reelcollator/src/modules/movies/models"
	"reelcollator/src/utils"
)

// recommendationLimit caps every personal selection.
const recommendationLimit = 3

// topTagCount is how many of the most frequent tags seed the catalog query.
const topTagCount = 10

type tagKind int

const (
	genreTag tagKind = iota
	keywordTag
	actorTag
)

type tagCount struct {
	Kind  tagKind
	ID    int64
	Count int
}

type topTagSet struct {
	Genres   []int64
	Keywords []int64
	Actors   []int64
}

func (s topTagSet) empty() bool {
	return len(s.Genres) == 0 && len(s.Keywords) == 0 && len(s.Actors) == 0
}

// tallyTags counts tag occurrences across the preference set's movies. All three
// tag kinds compete in a single pool.
func tallyTags(genres, keywords, actors []int64) []tagCount {
	counts := make(map[tagKind]map[int64]int)
	for kind, ids := range map[tagKind][]int64{genreTag: genres, keywordTag: keywords, actorTag: actors} {
		counts[kind] = make(map[int64]int)
		for _, id := range ids {
			counts[kind][id]++
		}
	}

	var pool []tagCount
	for kind, byID := range counts {
		for id, n := range byID {
			pool = append(pool, tagCount{Kind: kind, ID: id, Count: n})
		}
	}
	return pool
}

// topTags keeps the n most frequent tags. Ties break on kind, then lowest id,
// so the selection is reproducible for a given preference set.
func topTags(pool []tagCount, n int) topTagSet {
	sort.Slice(pool, func(i, j int) bool {
		if pool[i].Count != pool[j].Count {
			return pool[i].Count > pool[j].Count
		}
		if pool[i].Kind != pool[j].Kind {
			return pool[i].Kind < pool[j].Kind
		}
		return pool[i].ID < pool[j].ID
	})

	if len(pool) > n {
		pool = pool[:n]
	}

	var top topTagSet
	for _, tc := range pool {
		switch tc.Kind {
		case genreTag:
			top.Genres = append(top.Genres, tc.ID)
		case keywordTag:
			top.Keywords = append(top.Keywords, tc.ID)
		case actorTag:
			top.Actors = append(top.Actors, tc.ID)
		}
	}
	return top
}

// preferenceSet is the union of the user's rated and favorited movie ids.
func preferenceSet(userID int64) ([]int64, error) {
	db := config.DB

	var rated []int64
	if err := db.Model(&models.MovieScore{}).Where("user_id = ?", userID).Pluck("movie_id", &rated).Error; err != nil {
		return nil, err
	}

	var favorited []int64
	if err := db.Model(&models.FavoriteMovie{}).Where("user_id = ?", userID).Pluck("movie_id", &favorited).Error; err != nil {
		return nil, err
	}

	seen := make(map[int64]bool, len(rated)+len(favorited))
	var union []int64
	for _, id := range append(rated, favorited...) {
		if !seen[id] {
			seen[id] = true
			union = append(union, id)
		}
	}
	return union, nil
}

type recommendRow struct {
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
}

// GetRecommendations returns up to three unseen movies biased toward the tags
// that co-occur most with the user's rated and favorited movies. A user without
// any signal gets an empty list flagged as insufficient, never an error.
func GetRecommendations(userID int64) (lib.Recommendations, error) {
	prefs, err := preferenceSet(userID)
	if err != nil {
		return lib.Recommendations{}, &lib.RecommendationUnavailableError{Err: err}
	}
	if len(prefs) == 0 {
		return lib.Recommendations{Movies: []lib.MovieResult{}, InsufficientSignal: true}, nil
	}

	db := config.DB
	var genreIDs, keywordIDs, actorIDs []int64
	if err := db.Table("movies_genres").Where("movie_id IN ?", prefs).Pluck("genre_id", &genreIDs).Error; err != nil {
		return lib.Recommendations{}, &lib.RecommendationUnavailableError{Err: err}
	}
	if err := db.Table("movies_keywords").Where("movie_id IN ?", prefs).Pluck("keyword_id", &keywordIDs).Error; err != nil {
		return lib.Recommendations{}, &lib.RecommendationUnavailableError{Err: err}
	}
	if err := db.Table("movies_actors").Where("movie_id IN ?", prefs).Pluck("actor_id", &actorIDs).Error; err != nil {
		return lib.Recommendations{}, &lib.RecommendationUnavailableError{Err: err}
	}

	top := topTags(tallyTags(genreIDs, keywordIDs, actorIDs), topTagCount)
	if top.empty() {
		// preference movies carried no tags at all
		return lib.Recommendations{Movies: []lib.MovieResult{}, InsufficientSignal: true}, nil
	}

	// Matching here is deliberately disjunctive: any surviving tag qualifies a
	// candidate, unlike the conjunctive search filters.
	var orParts []string
	args := []interface{}{prefs}
	if len(top.Genres) > 0 {
		orParts = append(orParts, "m.id IN (SELECT movie_id FROM movies_genres WHERE genre_id IN ?)")
		args = append(args, top.Genres)
	}
	if len(top.Keywords) > 0 {
		orParts = append(orParts, "m.id IN (SELECT movie_id FROM movies_keywords WHERE keyword_id IN ?)")
		args = append(args, top.Keywords)
	}
	if len(top.Actors) > 0 {
		orParts = append(orParts, "m.id IN (SELECT movie_id FROM movies_actors WHERE actor_id IN ?)")
		args = append(args, top.Actors)
	}

	query := `
SELECT m.id, m.name, m.overview, m.poster_link, m.release_date, m.release_country,
       m.rating, m.revenue, m.runtime, m.director_id
FROM movies m
WHERE m.id NOT IN ?
  AND (` + strings.Join(orParts, " OR ") + `)
ORDER BY m.rating DESC
LIMIT ?`
	args = append(args, recommendationLimit)

	var rows []recommendRow
	if err := db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return lib.Recommendations{}, &lib.RecommendationUnavailableError{Err: err}
	}

	results := make([]lib.MovieResult, 0, len(rows))
	for _, r := range rows {
		results = append(results, lib.MovieResult{
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
		})
	}
	return lib.Recommendations{Movies: results}, nil
}
