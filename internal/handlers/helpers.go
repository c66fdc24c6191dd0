package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hillcountrygardens/backend/internal/services"
)

// parseBoolQuery reads an optional boolean query parameter. Absent or
// malformed values mean "no constraint" rather than an error; list filters
// are deliberately permissive.
func parseBoolQuery(c *gin.Context, name string) *bool {
	value, ok := c.GetQuery(name)
	if !ok {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1":
		b := true
		return &b
	case "false", "0":
		b := false
		return &b
	default:
		return nil
	}
}

// parseIDParam parses the :id path parameter as a UUID
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

// respondServiceError translates a service error to the right status code.
// Validation errors surface their message; anything unexpected is logged and
// returned as a generic 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrMissingName),
		errors.Is(err, services.ErrMissingField),
		errors.Is(err, services.ErrMissingImageURL),
		errors.Is(err, services.ErrInvalidSlug),
		errors.Is(err, services.ErrSlugTaken),
		errors.Is(err, services.ErrUnknownCategory),
		errors.Is(err, services.ErrCategoryInUse),
		errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrInvalidTimeRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrIdentifyQueueFull):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Identification queue is full, try again later"})
	default:
		log.Printf("ERROR: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
