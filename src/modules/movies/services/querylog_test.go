package movies

import (
	"testing"
	"time"

	lib "reelcollator/src/modules/movies/lib"
	models "reelcollator/src/modules/movies/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogQueryWritesTagRows(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, EnsureUser(1))

	director := int64(77)
	err := LogQuery(1, lib.SearchFilters{
		GenresIncluded:   []int64{28},
		GenresExcluded:   []int64{27},
		KeywordsIncluded: []int64{100},
		Actors:           []int64{500},
		Director:         &director,
		TitlePart:        "matrix",
		ReleaseDateGte:   "1999-01-01",
		ReleaseDateLte:   "2003-12-31",
	})
	require.NoError(t, err)

	var queries []models.SearchQuery
	require.NoError(t, db.Preload("Actors").Preload("Genres").Preload("Keywords").Find(&queries).Error)
	require.Len(t, queries, 1)

	q := queries[0]
	require.NotNil(t, q.TitlePart)
	assert.Equal(t, "matrix", *q.TitlePart)
	require.NotNil(t, q.DirectorID)
	assert.Equal(t, int64(77), *q.DirectorID)
	assert.NotNil(t, q.DateGte)
	assert.NotNil(t, q.DateLte)

	require.Len(t, q.Genres, 2)
	assert.Len(t, q.Actors, 1)
	assert.Len(t, q.Keywords, 1)

	excluded := 0
	for _, g := range q.Genres {
		if g.Excluded {
			excluded++
		}
	}
	assert.Equal(t, 1, excluded)
}

func TestGetStatsWindows(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, EnsureUser(1))
	require.NoError(t, EnsureUser(2))

	require.NoError(t, LogQuery(1, lib.SearchFilters{GenresIncluded: []int64{28}}))
	require.NoError(t, LogQuery(2, lib.SearchFilters{GenresIncluded: []int64{28, 18}}))

	// age one query out of the day window but keep it inside the month
	tenDaysAgo := time.Now().Add(-10 * 24 * time.Hour)
	require.NoError(t, db.Model(&models.SearchQuery{}).
		Where("user_id = ?", 2).
		Update("date", tenDaysAgo).Error)

	require.NoError(t, db.Create(&models.FavoriteMovie{UserID: 1, MovieID: 5}).Error)

	stats, err := GetStats()
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.Users)
	assert.Equal(t, int64(1), stats.Favorites)
	assert.Equal(t, int64(1), stats.Day.Queries)
	assert.Equal(t, int64(2), stats.Month.Queries)

	require.NotNil(t, stats.Month.TopGenre)
	assert.Equal(t, int64(28), stats.Month.TopGenre.ID)
	assert.Equal(t, int64(2), stats.Month.TopGenre.Count)

	assert.Nil(t, stats.Day.TopActor)
	assert.Nil(t, stats.Day.TopDirector)
}
