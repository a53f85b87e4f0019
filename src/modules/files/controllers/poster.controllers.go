package files

import (
	"net/http"

	file "reelcollator/src/modules/files/services"

	"github.com/gin-gonic/gin"
)

func PosterController(c *gin.Context) {
	filepath := c.Param("filepath")
	if filepath == "" || filepath == "/" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filepath"})
		return
	}

	reader, size, contentType, e := file.PosterService(filepath)
	if e != nil {
		c.JSON(e.StatusCode, gin.H{"error": e.Error()})
		return
	}

	c.DataFromReader(http.StatusOK, size, contentType, reader, nil)
}
