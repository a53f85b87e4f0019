package movies

import (
	"time"

	"reelcollator/src/config"
	lib "reelcollator/src/modules/movies/lib"
	models "reelcollator/src/modules/movies/models"

	"gorm.io/gorm"
)

// LogQuery appends one executed search plus its tag rows to the query log. The
// row and its associations land in a single transaction so a failed tag insert
// never leaves a dangling query row.
func LogQuery(userID int64, f lib.SearchFilters) error {
	entry := models.SearchQuery{
		UserID: userID,
		Date:   time.Now(),
	}
	if f.TitlePart != "" {
		entry.TitlePart = &f.TitlePart
	}
	if f.Country != "" {
		entry.Country = &f.Country
	}
	entry.DirectorID = f.Director
	if gte, lte, ok := f.DateRange(); ok {
		entry.DateGte = &gte
		entry.DateLte = &lte
	}

	for _, id := range f.Actors {
		entry.Actors = append(entry.Actors, models.QueryActor{ActorID: id})
	}
	for _, id := range f.GenresIncluded {
		entry.Genres = append(entry.Genres, models.QueryGenre{GenreID: id})
	}
	for _, id := range f.GenresExcluded {
		entry.Genres = append(entry.Genres, models.QueryGenre{GenreID: id, Excluded: true})
	}
	for _, id := range f.KeywordsIncluded {
		entry.Keywords = append(entry.Keywords, models.QueryKeyword{KeywordID: id})
	}
	for _, id := range f.KeywordsExcluded {
		entry.Keywords = append(entry.Keywords, models.QueryKeyword{KeywordID: id, Excluded: true})
	}

	if err := config.DB.Create(&entry).Error; err != nil {
		return &lib.DatastoreUnavailableError{Op: "log query", Err: err}
	}
	return nil
}

// statWindows are the aggregation horizons of the usage report.
var statWindows = []struct {
	Name string
	Span time.Duration
}{
	{"day", 24 * time.Hour},
	{"week", 7 * 24 * time.Hour},
	{"month", 30 * 24 * time.Hour},
}

// GetStats aggregates the query log and list tables into the usage report:
// totals plus the most-requested genre/keyword/actor/director per window.
func GetStats() (lib.UsageStats, error) {
	db := config.DB
	var stats lib.UsageStats

	if err := db.Model(&models.User{}).Count(&stats.Users).Error; err != nil {
		return stats, &lib.DatastoreUnavailableError{Op: "stats", Err: err}
	}
	if err := db.Model(&models.FavoriteMovie{}).Count(&stats.Favorites).Error; err != nil {
		return stats, &lib.DatastoreUnavailableError{Op: "stats", Err: err}
	}
	if err := db.Model(&models.WatchlistMovie{}).Count(&stats.Watchlist).Error; err != nil {
		return stats, &lib.DatastoreUnavailableError{Op: "stats", Err: err}
	}

	for _, w := range statWindows {
		ws, err := windowStats(db, time.Now().Add(-w.Span))
		if err != nil {
			return stats, &lib.DatastoreUnavailableError{Op: "stats " + w.Name, Err: err}
		}
		switch w.Name {
		case "day":
			stats.Day = ws
		case "week":
			stats.Week = ws
		case "month":
			stats.Month = ws
		}
	}
	return stats, nil
}

func windowStats(db *gorm.DB, since time.Time) (lib.WindowStats, error) {
	var ws lib.WindowStats

	if err := db.Model(&models.SearchQuery{}).Where("date > ?", since).Count(&ws.Queries).Error; err != nil {
		return ws, err
	}

	var err error
	if ws.TopGenre, err = topTagUsage(db, "query_genres", "genre_id", since); err != nil {
		return ws, err
	}
	if ws.TopKeyword, err = topTagUsage(db, "query_keywords", "keyword_id", since); err != nil {
		return ws, err
	}
	if ws.TopActor, err = topTagUsage(db, "query_actors", "actor_id", since); err != nil {
		return ws, err
	}

	var director lib.TagUsage
	err = db.Model(&models.SearchQuery{}).
		Select("director_id AS id, COUNT(*) AS count").
		Where("date > ? AND director_id IS NOT NULL", since).
		Group("director_id").
		Order("count DESC, id ASC").
		Limit(1).
		Scan(&director).Error
	if err != nil {
		return ws, err
	}
	if director.Count > 0 {
		ws.TopDirector = &director
	}
	return ws, nil
}

// topTagUsage finds the most requested tag of one kind since the cutoff.
// Excluded tag rows count too: an exclusion is still interest in the tag.
func topTagUsage(db *gorm.DB, table, column string, since time.Time) (*lib.TagUsage, error) {
	var usage lib.TagUsage
	err := db.Table(table+" t").
		Select("t."+column+" AS id, COUNT(*) AS count").
		Joins("JOIN search_queries q ON q.id = t.query_id").
		Where("q.date > ?", since).
		Group("t." + column).
		Order("count DESC, id ASC").
		Limit(1).
		Scan(&usage).Error
	if err != nil {
		return nil, err
	}
	if usage.Count == 0 {
		return nil, nil
	}
	return &usage, nil
}
