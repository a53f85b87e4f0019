package movies

import (
	"errors"
	"log"
	"net/http"

	lib "reelcollator/src/modules/movies/lib"
	service "reelcollator/src/modules/movies/services"
	"reelcollator/src/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps the data-layer taxonomy onto HTTP: invalid input is the
// caller's fault, an unreachable datastore is retryable.
func respondError(c *gin.Context, err error) {
	var invalid *lib.InvalidFilterError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	var unavailable *lib.DatastoreUnavailableError
	var recUnavailable *lib.RecommendationUnavailableError
	if errors.As(err, &unavailable) || errors.As(err, &recUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": err.Error(), "retryable": true})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
}

type searchRequest struct {
	UserID int64 `json:"user_id"`
	lib.SearchFilters
}

func SearchMovies(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request parameters: " + err.Error(),
		})
		return
	}

	results, err := service.SearchMovies(req.SearchFilters)
	if err != nil {
		respondError(c, err)
		return
	}

	// the query log never blocks or fails a search
	if req.UserID > 0 {
		if err := service.LogQuery(req.UserID, req.SearchFilters); err != nil {
			log.Printf("[QueryLog] Failed to log search for user %d: %v", req.UserID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(results),
		"data":    results,
	})
}

func GetRecommendations(c *gin.Context) {
	userID, err := utils.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	recs, svcErr := service.GetRecommendations(userID)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"insufficient_signal": recs.InsufficientSignal,
		"data":                recs.Movies,
	})
}
