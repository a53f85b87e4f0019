package routes

import (
	"net/http"

	"reelcollator/src/config"
	files "reelcollator/src/modules/files/controllers"
	movies "reelcollator/src/modules/movies/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/readyz", func(c *gin.Context) {
		if config.CheckConnection() {
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
		} else {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		}
	})

	// Catalog routes
	movieRoutes := api.Group("/movies")
	{
		movieRoutes.POST("search", movies.SearchMovies)
		movieRoutes.GET(":id", movies.GetMovieDetails)
		movieRoutes.POST(":id", movies.SaveMovie)
		movieRoutes.DELETE(":id", movies.DeleteMovie)
	}

	// Per-user routes
	userRoutes := api.Group("/users/:id")
	{
		userRoutes.GET("recommendations", movies.GetRecommendations)
		userRoutes.GET("favorites", movies.ListFavorites)
		userRoutes.GET("watchlist", movies.ListWatchlist)
		userRoutes.POST("favorites/:movieID", movies.ToggleFavorite)
		userRoutes.POST("watchlist/:movieID", movies.ToggleWatchlist)
		userRoutes.PUT("scores/:movieID", movies.UpsertScore)
	}

	// Reference and admin routes
	api.GET("genres", movies.ListGenres)
	api.GET("keywords", movies.ListKeywords)
	api.GET("countries", movies.ListCountries)
	api.GET("stats", movies.GetStats)
	api.POST("ingest", movies.Ingest)

	// Poster Proxy MinIO
	posterRoutes := api.Group("/posters")
	{
		posterRoutes.GET("/*filepath", files.PosterController)
	}
}
