package movies

import (
	"net/http"

	service "reelcollator/src/modules/movies/services"

	"github.com/gin-gonic/gin"
)

func ListGenres(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": service.CurrentCatalog().Genres})
}

func ListKeywords(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": service.CurrentCatalog().Keywords})
}

func ListCountries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": service.CurrentCatalog().Countries})
}

func GetStats(c *gin.Context) {
	stats, err := service.GetStats()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}
