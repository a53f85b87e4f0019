package utils

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// ServiceError to define return exception for system
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// BindJson is a function to bind the json request
func BindJson(c *gin.Context, request interface{}) *ServiceError {
	if err := c.ShouldBind(&request); err != nil {
		return &ServiceError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid input",
		}
	}
	return nil
}

// Round1 rounds a rating to one decimal place. Applying it twice is a no-op.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ParseID is the function to parse a path parameter into a positive int64 id
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &ServiceError{
			StatusCode: http.StatusBadRequest,
			Message:    "invalid id: " + raw,
		}
	}
	return id, nil
}

// FormatDate renders a stored date as ISO-8601 (YYYY-MM-DD).
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
