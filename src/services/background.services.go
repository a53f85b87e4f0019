package services

import (
	"context"
	"log"

	"reelcollator/src/config"
	file "reelcollator/src/modules/files/services"
	models "reelcollator/src/modules/movies/models"
	movies "reelcollator/src/modules/movies/services"
	"reelcollator/src/modules/tmdb"

	"github.com/robfig/cron/v3"
)

// SetupBackgroundJobs schedules the periodic catalog work: the nightly trending
// ingestion, the poster sync, and the reference catalog refresh.
func SetupBackgroundJobs() {
	c := cron.New()

	c.AddFunc("@daily", func() {
		go runIngestion()
	})
	c.AddFunc("@every 1h", func() {
		go refreshCatalog()
	})
	c.AddFunc("@every 10m", func() {
		go syncPosters()
	})

	c.Start()
	log.Println("[Cron] Background jobs initialized")
}

func runIngestion() {
	log.Println("[Ingest] Starting scheduled trending sweep")
	client := tmdb.NewClient()
	if err := tmdb.IngestTrending(context.Background(), client, 1, 3); err != nil {
		log.Printf("[Ingest] Scheduled sweep failed: %v", err)
		return
	}
	log.Println("[Ingest] Scheduled trending sweep finished")
}

func refreshCatalog() {
	if err := movies.RefreshCatalog(); err != nil {
		log.Printf("[Catalog] Refresh failed: %v", err)
		return
	}
	if err := movies.SyncCountries(); err != nil {
		log.Printf("[Catalog] Country sync failed: %v", err)
	}
}

// syncPosters makes sure every catalog poster is mirrored into object storage.
func syncPosters() {
	var rows []models.Movie
	if err := config.DB.Select("id", "poster_link").Find(&rows).Error; err != nil {
		log.Printf("[PosterSync] Error fetching movies: %v", err)
		return
	}

	log.Printf("[PosterSync] Found %d movies to process", len(rows))
	client := tmdb.NewClient()
	for _, movie := range rows {
		if movie.PosterLink == "" {
			continue
		}
		if err := file.StorePoster(client, movie.PosterLink); err != nil {
			log.Printf("[PosterSync] Failed for movie %d: %v", movie.ID, err)
		}
	}
}
