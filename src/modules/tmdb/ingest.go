package tmdb

import (
	"context"
	"log"
	"regexp"
	"strings"
	"time"

	"reelcollator/src/config"
	models "reelcollator/src/modules/movies/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm/clause"
)

// Only people whose credited name fits the target locale's script make it into
// the catalog, and only when the name splits into given name + surname.
var localeName = regexp.MustCompile(`^[а-яА-ЯёЁ\s-]+$`)

type Person struct {
	ID      int64
	Name    string
	Surname string
}

// ScanCredits walks cast then crew: locale-expressible two-part "Acting" names
// become actors, the first matching "Directing" credit becomes the director and
// stops the scan.
func ScanCredits(credits Credits) (actors []Person, director *Person) {
	for _, credit := range append(credits.Cast, credits.Crew...) {
		if !localeName.MatchString(credit.Name) {
			continue
		}
		parts := strings.Fields(credit.Name)
		if len(parts) < 2 {
			continue
		}
		switch credit.KnownForDepartment {
		case "Acting":
			actors = append(actors, Person{ID: credit.ID, Name: parts[0], Surname: parts[1]})
		case "Directing":
			director = &Person{ID: credit.ID, Name: parts[0], Surname: parts[1]}
			return actors, director
		}
	}
	return actors, director
}

// ingestedMovie is everything fetched for one trending entry before storage.
type ingestedMovie struct {
	trending TrendingMovie
	details  MovieDetails
	credits  Credits
	keywords []Tag
}

// IngestTrending pages through the trending feed and stores each movie with its
// people and tags. Movies without a locale-expressible director are skipped,
// matching the catalog's presentation constraints.
func IngestTrending(ctx context.Context, client *Client, firstPage, lastPage int) error {
	for page := firstPage; page <= lastPage; page++ {
		trending, err := client.TrendingPage(ctx, page)
		if err != nil {
			return err
		}
		log.Printf("[Ingest] Page %d: %d trending movies", page, len(trending))

		fetched := make([]*ingestedMovie, len(trending))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(4)
		for i, movie := range trending {
			i, movie := i, movie
			g.Go(func() error {
				details, err := client.Details(gctx, movie.ID)
				if err != nil {
					return err
				}
				credits, err := client.Credits(gctx, movie.ID)
				if err != nil {
					return err
				}
				keywords, err := client.Keywords(gctx, movie.ID)
				if err != nil {
					return err
				}
				fetched[i] = &ingestedMovie{
					trending: movie,
					details:  details,
					credits:  credits,
					keywords: keywords,
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for _, item := range fetched {
			if item == nil {
				continue
			}
			if err := storeMovie(item); err != nil {
				log.Printf("[Ingest] Failed to store movie %d: %v", item.trending.ID, err)
			}
		}
	}
	return nil
}

// storeMovie writes one movie plus its people and tag associations in a single
// transaction. Existing rows are left untouched.
func storeMovie(item *ingestedMovie) error {
	actors, director := ScanCredits(item.credits)
	if director == nil {
		return nil
	}

	releaseDate, err := time.Parse("2006-01-02", item.trending.ReleaseDate)
	if err != nil {
		return nil
	}

	country := ""
	if len(item.details.OriginCountry) > 0 {
		country = item.details.OriginCountry[0]
	}

	movie := models.Movie{
		ID:             item.trending.ID,
		Name:           item.trending.Title,
		Overview:       item.trending.Overview,
		PosterLink:     PosterURL(item.trending.PosterPath),
		ReleaseDate:    releaseDate,
		ReleaseCountry: country,
		Rating:         item.trending.VoteAverage,
		Revenue:        item.details.Revenue,
		Runtime:        item.details.Runtime,
		DirectorID:     &director.ID,
	}
	for _, a := range actors {
		movie.Actors = append(movie.Actors, models.Actor{ID: a.ID, Name: a.Name, Surname: a.Surname})
	}
	for _, g := range item.details.Genres {
		movie.Genres = append(movie.Genres, models.Genre{ID: g.ID, Name: g.Name})
	}
	for _, k := range item.keywords {
		movie.Keywords = append(movie.Keywords, models.Keyword{ID: k.ID, Name: k.Name})
	}

	tx := config.DB.Begin()
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Director{ID: director.ID, Name: director.Name, Surname: director.Surname}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&movie).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}
