package movies

import (
	"net/http"

	service "reelcollator/src/modules/movies/services"
	"reelcollator/src/utils"

	"github.com/gin-gonic/gin"
)

func pathIDs(c *gin.Context) (userID, movieID int64, ok bool) {
	userID, err := utils.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return 0, 0, false
	}
	movieID, err = utils.ParseID(c.Param("movieID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return 0, 0, false
	}
	return userID, movieID, true
}

func toggleHandler(list string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, movieID, ok := pathIDs(c)
		if !ok {
			return
		}
		if err := service.EnsureUser(userID); err != nil {
			respondError(c, err)
			return
		}

		member, err := service.ToggleMembership(userID, movieID, list)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "member": member})
	}
}

var (
	ToggleFavorite  = toggleHandler(service.ListFavorites)
	ToggleWatchlist = toggleHandler(service.ListWatchlist)
)

func listHandler(list string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := utils.ParseID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		results, svcErr := service.ListMovies(userID, list)
		if svcErr != nil {
			respondError(c, svcErr)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(results), "data": results})
	}
}

var (
	ListFavorites = listHandler(service.ListFavorites)
	ListWatchlist = listHandler(service.ListWatchlist)
)

func UpsertScore(c *gin.Context) {
	userID, movieID, ok := pathIDs(c)
	if !ok {
		return
	}

	var req struct {
		Score int `json:"score" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request parameters: " + err.Error()})
		return
	}

	if err := service.EnsureUser(userID); err != nil {
		respondError(c, err)
		return
	}
	if err := service.UpsertScore(userID, movieID, req.Score); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
