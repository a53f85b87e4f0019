package movies

import (
	"context"
	"log"
	"net/http"
	"strconv"

	lib "reelcollator/src/modules/movies/lib"
	service "reelcollator/src/modules/movies/services"
	"reelcollator/src/modules/tmdb"
	"reelcollator/src/utils"

	"github.com/gin-gonic/gin"
)

func GetMovieDetails(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	result, svcErr := service.GetMovieDetails(id)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "movie not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

func SaveMovie(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	var update lib.MovieUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request parameters: " + err.Error()})
		return
	}
	update.ID = id

	if err := service.SaveMovie(update); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func DeleteMovie(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if svcErr := service.DeleteMovie(id); svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Ingest kicks off a trending sweep in the background and returns immediately.
func Ingest(c *gin.Context) {
	firstPage, _ := strconv.Atoi(c.DefaultQuery("first_page", "1"))
	lastPage, _ := strconv.Atoi(c.DefaultQuery("last_page", "3"))
	if firstPage < 1 || lastPage < firstPage {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid page range"})
		return
	}

	go func() {
		if err := tmdb.IngestTrending(context.Background(), tmdb.NewClient(), firstPage, lastPage); err != nil {
			log.Printf("[Ingest] Sweep pages %d-%d failed: %v", firstPage, lastPage, err)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"success": true, "message": "ingestion started"})
}
