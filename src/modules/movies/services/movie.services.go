package movies

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"reelcollator/src/config"
	lib "reelcollator/src/modules/movies/lib"
	models "reelcollator/src/modules/movies/models"

	"gorm.io/gorm"
)

const detailsCacheTTL = 16 * time.Hour

func detailsCacheKey(id int64) string {
	return fmt.Sprintf("movie_details:%d", id)
}

// GetMovieDetails returns one movie with its full tag sets, Redis first, DB on a
// cache miss. A missing movie is reported as a ServiceError-free nil result so
// the controller can answer 404 without guessing.
func GetMovieDetails(id int64) (*lib.MovieResult, error) {
	rdb := config.RDB
	ctx := config.Ctx
	cacheKey := detailsCacheKey(id)

	// 1. Try Redis cache first
	if rdb != nil {
		if cached, err := rdb.Get(ctx, cacheKey).Bytes(); err == nil && len(cached) > 0 {
			var result lib.MovieResult
			if jsonErr := json.Unmarshal(cached, &result); jsonErr == nil {
				return &result, nil
			}
		}
	}

	// 2. Load from DB with tag associations
	var movie models.Movie
	err := config.DB.
		Preload("Actors").Preload("Genres").Preload("Keywords").
		First(&movie, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &lib.DatastoreUnavailableError{Op: "movie details", Err: err}
	}

	result := movieToResult(movie)

	// 3. Cache the normalized record
	if rdb != nil {
		if jsonStr, err := json.Marshal(result); err == nil {
			_ = rdb.Set(ctx, cacheKey, jsonStr, detailsCacheTTL).Err()
		}
	}

	return &result, nil
}

// SaveMovie updates a movie's scalar fields and applies the tag add/remove sets.
// Everything runs in one transaction so a failed association write cannot leave
// the movie half-updated.
func SaveMovie(update lib.MovieUpdate) error {
	if update.ID <= 0 {
		return &lib.InvalidFilterError{Field: "id", Reason: "id must be a positive integer"}
	}
	releaseDate, err := time.Parse(lib.DateLayout, update.ReleaseDate)
	if update.ReleaseDate != "" && err != nil {
		return &lib.InvalidFilterError{Field: "release_date", Reason: "expected YYYY-MM-DD"}
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		columns := map[string]interface{}{
			"name":            update.Name,
			"overview":        update.Overview,
			"poster_link":     update.PosterLink,
			"release_country": update.ReleaseCountry,
			"rating":          update.Rating,
			"revenue":         update.Revenue,
			"runtime":         update.Runtime,
			"director_id":     update.Director,
		}
		if update.ReleaseDate != "" {
			columns["release_date"] = releaseDate
		}
		if err := tx.Model(&models.Movie{ID: update.ID}).Updates(columns).Error; err != nil {
			return err
		}

		type assoc struct {
			table, column string
			add, remove   []int64
		}
		for _, a := range []assoc{
			{"movies_actors", "actor_id", update.ActorsAdd, update.ActorsRemove},
			{"movies_genres", "genre_id", update.GenresAdd, update.GenresRemove},
			{"movies_keywords", "keyword_id", update.KeywordsAdd, update.KeywordsRemove},
		} {
			if len(a.remove) > 0 {
				if err := tx.Exec(
					"DELETE FROM "+a.table+" WHERE movie_id = ? AND "+a.column+" IN ?",
					update.ID, a.remove).Error; err != nil {
					return err
				}
			}
			for _, tagID := range a.add {
				if err := tx.Exec(
					"INSERT INTO "+a.table+" (movie_id, "+a.column+") VALUES (?, ?)",
					update.ID, tagID).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return &lib.DatastoreUnavailableError{Op: "save movie", Err: err}
	}

	// drop the stale cached record
	if config.RDB != nil {
		_ = config.RDB.Del(config.Ctx, detailsCacheKey(update.ID)).Err()
	}
	return nil
}

// DeleteMovie removes the movie and its tag associations.
func DeleteMovie(id int64) error {
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"movies_actors", "movies_genres", "movies_keywords"} {
			if err := tx.Exec("DELETE FROM "+table+" WHERE movie_id = ?", id).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Movie{}, id).Error
	})
	if err != nil {
		return &lib.DatastoreUnavailableError{Op: "delete movie", Err: err}
	}

	if config.RDB != nil {
		_ = config.RDB.Del(config.Ctx, detailsCacheKey(id)).Err()
	}
	return nil
}
