package routes

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"vehicle-access-control/internal/config"
	"vehicle-access-control/internal/storage"

	"github.com/gin-gonic/gin"
)

// Storage returns the storage provider wired into the request context.
func Storage(c *gin.Context) storage.Provider {
	return c.MustGet("storage").(storage.Provider)
}

// idParam parses the :id path parameter. A malformed id aborts the
// request with 400 before any storage call.
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		AbortWithHTTPError(c, http.StatusBadRequest, ErrInvalidParameter,
			fmt.Sprintf("invalid id parameter: %q", c.Param("id")))
		return 0, false
	}
	return id, true
}

// limitQuery parses the optional ?limit query parameter. Out of range
// values fall back to the default cap.
func limitQuery(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(config.MAX_LIST_LIMIT)))
	if err != nil || limit <= 0 || limit > config.MAX_LIST_LIMIT {
		return config.MAX_LIST_LIMIT
	}
	return limit
}

// abortStorageError translates a storage error for one record into the
// error chain, labeling not-found responses with the entity name.
func abortStorageError(c *gin.Context, err error, entity string, id int64) {
	if errors.Is(err, storage.ErrNotFound) {
		AbortWithHTTPError(c, http.StatusNotFound, err,
			fmt.Sprintf("%s with id %d not found", entity, id))
		return
	}
	AbortWithError(c, err)
}

// bindJSON binds the request body, aborting with 400 on schema violations.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		AbortWithHTTPError(c, http.StatusBadRequest, ErrInvalidRequest, err.Error())
		return false
	}
	return true
}

// deleted writes the delete confirmation body.
func deleted(c *gin.Context, entity string, id int64) {
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%s with id %d has been deleted.", entity, id),
	})
}
