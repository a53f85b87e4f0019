package movies

import (
	"testing"
	"time"

	models "reelcollator/src/modules/movies/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTallyTagsCombinesKinds(t *testing.T) {
	pool := tallyTags(
		[]int64{28, 28, 18}, // genres
		[]int64{1},          // keywords
		[]int64{500, 500},   // actors
	)

	counts := make(map[tagKind]map[int64]int)
	for _, tc := range pool {
		if counts[tc.Kind] == nil {
			counts[tc.Kind] = map[int64]int{}
		}
		counts[tc.Kind][tc.ID] = tc.Count
	}

	assert.Len(t, pool, 4)
	assert.Equal(t, 2, counts[genreTag][28])
	assert.Equal(t, 1, counts[genreTag][18])
	assert.Equal(t, 1, counts[keywordTag][1])
	assert.Equal(t, 2, counts[actorTag][500])
}

func TestTopTagsDeterministicTieBreak(t *testing.T) {
	// all counts equal: kind order then lowest id decides
	pool := []tagCount{
		{actorTag, 500, 1},
		{keywordTag, 9, 1},
		{genreTag, 28, 1},
		{genreTag, 12, 1},
	}

	top := topTags(pool, 3)
	assert.Equal(t, []int64{12, 28}, top.Genres)
	assert.Equal(t, []int64{9}, top.Keywords)
	assert.Empty(t, top.Actors)
}

func TestTopTagsCap(t *testing.T) {
	var pool []tagCount
	for id := int64(1); id <= 15; id++ {
		pool = append(pool, tagCount{genreTag, id, 1})
	}

	top := topTags(pool, 10)
	assert.Len(t, top.Genres, 10)
}

func seedRecommendationCatalog(t *testing.T) {
	db := setupTestDB(t)

	action := models.Genre{ID: 28, Name: "action"}
	drama := models.Genre{ID: 18, Name: "drama"}
	heist := models.Keyword{ID: 1, Name: "heist"}
	date := time.Date(2010, 6, 1, 0, 0, 0, 0, time.UTC)

	seedMovie(t, db, models.Movie{ID: 42, Name: "Seen Action", ReleaseDate: date, Rating: 9.0, Genres: []models.Genre{action}})
	seedMovie(t, db, models.Movie{ID: 7, Name: "Seen Heist", ReleaseDate: date, Rating: 8.0, Genres: []models.Genre{action}, Keywords: []models.Keyword{heist}})
	seedMovie(t, db, models.Movie{ID: 100, Name: "Unseen Action A", ReleaseDate: date, Rating: 7.5, Genres: []models.Genre{action}})
	seedMovie(t, db, models.Movie{ID: 101, Name: "Unseen Action B", ReleaseDate: date, Rating: 8.2, Genres: []models.Genre{action}, Keywords: []models.Keyword{heist}})
	seedMovie(t, db, models.Movie{ID: 102, Name: "Unseen Drama", ReleaseDate: date, Rating: 9.9, Genres: []models.Genre{drama}})
	seedMovie(t, db, models.Movie{ID: 103, Name: "Unseen Action C", ReleaseDate: date, Rating: 6.0, Genres: []models.Genre{action}})
	seedMovie(t, db, models.Movie{ID: 104, Name: "Unseen Action D", ReleaseDate: date, Rating: 5.0, Genres: []models.Genre{action}})

	require.NoError(t, db.Create(&models.User{ID: 1}).Error)
	require.NoError(t, db.Create(&models.MovieScore{UserID: 1, MovieID: 42, Score: 9}).Error)
	require.NoError(t, db.Create(&models.FavoriteMovie{UserID: 1, MovieID: 7}).Error)
}

func TestGetRecommendationsExcludesPreferenceSet(t *testing.T) {
	seedRecommendationCatalog(t)

	recs, err := GetRecommendations(1)
	require.NoError(t, err)
	assert.False(t, recs.InsufficientSignal)

	for _, m := range recs.Movies {
		assert.NotEqual(t, int64(42), m.ID)
		assert.NotEqual(t, int64(7), m.ID)
	}
}

func TestGetRecommendationsRankedAndCapped(t *testing.T) {
	seedRecommendationCatalog(t)

	recs, err := GetRecommendations(1)
	require.NoError(t, err)
	require.Len(t, recs.Movies, 3)

	// best unseen matches first, the drama never qualifies
	assert.Equal(t, int64(101), recs.Movies[0].ID)
	assert.Equal(t, int64(100), recs.Movies[1].ID)
	assert.Equal(t, int64(103), recs.Movies[2].ID)
	for _, m := range recs.Movies {
		assert.NotEqual(t, int64(102), m.ID)
	}
}

func TestGetRecommendationsEmptyPreferenceSet(t *testing.T) {
	seedRecommendationCatalog(t)

	recs, err := GetRecommendations(99)
	require.NoError(t, err)
	assert.True(t, recs.InsufficientSignal)
	assert.Empty(t, recs.Movies)
}

func TestGetRecommendationsUntaggedPreferenceSet(t *testing.T) {
	db := setupTestDB(t)

	seedMovie(t, db, models.Movie{ID: 1, Name: "Tagless", ReleaseDate: time.Now(), Rating: 5})
	require.NoError(t, db.Create(&models.FavoriteMovie{UserID: 5, MovieID: 1}).Error)

	recs, err := GetRecommendations(5)
	require.NoError(t, err)
	assert.True(t, recs.InsufficientSignal)
	assert.Empty(t, recs.Movies)
}
