package movies

import (
	"errors"
	"testing"
	"time"

	lib "reelcollator/src/modules/movies/lib"
	models "reelcollator/src/modules/movies/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleMembershipRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	seedMovie(t, db, models.Movie{ID: 5, Name: "Toggleable", ReleaseDate: time.Now(), Rating: 7})
	require.NoError(t, EnsureUser(1))

	member, err := ToggleMembership(1, 5, ListFavorites)
	require.NoError(t, err)
	assert.True(t, member)

	member, err = ToggleMembership(1, 5, ListFavorites)
	require.NoError(t, err)
	assert.False(t, member)

	var count int64
	require.NoError(t, db.Model(&models.FavoriteMovie{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestToggleMembershipListsAreIndependent(t *testing.T) {
	db := setupTestDB(t)
	seedMovie(t, db, models.Movie{ID: 5, Name: "Toggleable", ReleaseDate: time.Now(), Rating: 7})
	require.NoError(t, EnsureUser(1))

	_, err := ToggleMembership(1, 5, ListFavorites)
	require.NoError(t, err)

	inWatchlist, err := IsMember(1, 5, ListWatchlist)
	require.NoError(t, err)
	assert.False(t, inWatchlist)

	inFavorites, err := IsMember(1, 5, ListFavorites)
	require.NoError(t, err)
	assert.True(t, inFavorites)
}

func TestToggleMembershipUnknownList(t *testing.T) {
	setupTestDB(t)

	_, err := ToggleMembership(1, 5, "queue")
	var invalid *lib.InvalidFilterError
	assert.True(t, errors.As(err, &invalid))
}

func TestUpsertScoreOverwrites(t *testing.T) {
	db := setupTestDB(t)
	seedMovie(t, db, models.Movie{ID: 5, Name: "Scored", ReleaseDate: time.Now(), Rating: 7})
	require.NoError(t, EnsureUser(1))

	require.NoError(t, UpsertScore(1, 5, 7))
	require.NoError(t, UpsertScore(1, 5, 3))

	var rows []models.MovieScore
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].Score)
}

func TestUpsertScoreRejectsOutOfRange(t *testing.T) {
	setupTestDB(t)

	for _, score := range []int{0, 11, -3} {
		err := UpsertScore(1, 5, score)
		var invalid *lib.InvalidFilterError
		assert.True(t, errors.As(err, &invalid), "score %d", score)
	}
}

func TestListMoviesReturnsTagSets(t *testing.T) {
	db := setupTestDB(t)
	seedMovie(t, db, models.Movie{
		ID:          5,
		Name:        "Listed",
		ReleaseDate: time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC),
		Rating:      7.25,
		Genres:      []models.Genre{{ID: 28, Name: "action"}},
		Actors:      []models.Actor{{ID: 500, Name: "Имя", Surname: "Фамилия"}},
	})
	require.NoError(t, EnsureUser(1))

	_, err := ToggleMembership(1, 5, ListWatchlist)
	require.NoError(t, err)

	results, err := ListMovies(1, ListWatchlist)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, int64(5), results[0].ID)
	assert.Equal(t, "2020-03-15", results[0].ReleaseDate)
	assert.Equal(t, 7.3, results[0].Rating) // rounded to one decimal
	assert.Equal(t, []int64{28}, results[0].Genres)
	assert.Equal(t, []int64{500}, results[0].Actors)
}

func TestListMoviesEmpty(t *testing.T) {
	setupTestDB(t)
	require.NoError(t, EnsureUser(1))

	results, err := ListMovies(1, ListFavorites)
	require.NoError(t, err)
	assert.Empty(t, results)
}
