package movies

import (
	"errors"

	"reelcollator/src/config"
	lib "reelcollator/src/modules/movies/lib"
	models "reelcollator/src/modules/movies/models"
	"reelcollator/src/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	ListFavorites = "favorites"
	ListWatchlist = "watchlist"
)

// EnsureUser creates the user row on first contact; existing rows are left alone.
func EnsureUser(userID int64) error {
	err := config.DB.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.User{ID: userID}).Error
	if err != nil {
		return &lib.DatastoreUnavailableError{Op: "ensure user", Err: err}
	}
	return nil
}

// ToggleMembership flips a movie's presence in the named list and reports the
// resulting membership. Toggling twice restores the original state; toggling a
// movie that was never a member simply adds it.
func ToggleMembership(userID, movieID int64, list string) (bool, error) {
	if list != ListFavorites && list != ListWatchlist {
		return false, &lib.InvalidFilterError{Field: "list", Reason: "unknown list " + list}
	}

	member := false
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if list == ListFavorites {
			row := models.FavoriteMovie{UserID: userID, MovieID: movieID}
			err := tx.Where(&row).First(&models.FavoriteMovie{}).Error
			switch {
			case err == nil:
				return tx.Where(&row).Delete(&models.FavoriteMovie{}).Error
			case errors.Is(err, gorm.ErrRecordNotFound):
				member = true
				return tx.Create(&row).Error
			default:
				return err
			}
		}
		row := models.WatchlistMovie{UserID: userID, MovieID: movieID}
		err := tx.Where(&row).First(&models.WatchlistMovie{}).Error
		switch {
		case err == nil:
			return tx.Where(&row).Delete(&models.WatchlistMovie{}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			member = true
			return tx.Create(&row).Error
		default:
			return err
		}
	})
	if err != nil {
		return false, &lib.DatastoreUnavailableError{Op: "toggle " + list, Err: err}
	}
	return member, nil
}

// IsMember reports whether a movie sits in the named list right now.
func IsMember(userID, movieID int64, list string) (bool, error) {
	db := config.DB
	var count int64
	var err error
	switch list {
	case ListFavorites:
		err = db.Model(&models.FavoriteMovie{}).
			Where("user_id = ? AND movie_id = ?", userID, movieID).Count(&count).Error
	case ListWatchlist:
		err = db.Model(&models.WatchlistMovie{}).
			Where("user_id = ? AND movie_id = ?", userID, movieID).Count(&count).Error
	default:
		return false, &lib.InvalidFilterError{Field: "list", Reason: "unknown list " + list}
	}
	if err != nil {
		return false, &lib.DatastoreUnavailableError{Op: "check " + list, Err: err}
	}
	return count > 0, nil
}

// UpsertScore stores a 1-10 score for (user, movie), overwriting any previous
// value. Out-of-range scores are rejected, never clamped.
func UpsertScore(userID, movieID int64, score int) error {
	if score < 1 || score > 10 {
		return &lib.InvalidFilterError{Field: "score", Reason: "must be between 1 and 10"}
	}

	err := config.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score"}),
	}).Create(&models.MovieScore{UserID: userID, MovieID: movieID, Score: score}).Error
	if err != nil {
		return &lib.DatastoreUnavailableError{Op: "upsert score", Err: err}
	}
	return nil
}

// ListMovies returns the movies currently in the user's favorites or watchlist.
func ListMovies(userID int64, list string) ([]lib.MovieResult, error) {
	var table string
	switch list {
	case ListFavorites:
		table = "favorite_movies"
	case ListWatchlist:
		table = "watchlist_movies"
	default:
		return nil, &lib.InvalidFilterError{Field: "list", Reason: "unknown list " + list}
	}

	var rows []models.Movie
	err := config.DB.
		Joins("JOIN "+table+" lm ON lm.movie_id = movies.id AND lm.user_id = ?", userID).
		Preload("Actors").Preload("Genres").Preload("Keywords").
		Find(&rows).Error
	if err != nil {
		return nil, &lib.DatastoreUnavailableError{Op: "list " + list, Err: err}
	}

	results := make([]lib.MovieResult, 0, len(rows))
	for _, m := range rows {
		results = append(results, movieToResult(m))
	}
	return results, nil
}

func movieToResult(m models.Movie) lib.MovieResult {
	res := lib.MovieResult{
		ID:             m.ID,
		Name:           m.Name,
		Overview:       m.Overview,
		PosterLink:     m.PosterLink,
		ReleaseDate:    utils.FormatDate(m.ReleaseDate),
		ReleaseCountry: m.ReleaseCountry,
		Rating:         utils.Round1(m.Rating),
		Revenue:        m.Revenue,
		Runtime:        m.Runtime,
		Director:       m.DirectorID,
	}
	for _, a := range m.Actors {
		res.Actors = append(res.Actors, a.ID)
	}
	for _, g := range m.Genres {
		res.Genres = append(res.Genres, g.ID)
	}
	for _, k := range m.Keywords {
		res.Keywords = append(res.Keywords, k.ID)
	}
	return res
}
