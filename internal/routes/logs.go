package routes

import (
	"net/http"

	"vehicle-access-control/internal/storage"

	"github.com/gin-gonic/gin"
)

func EntryExitLogRoutes(r *gin.RouterGroup, guard Guard) {
	r.GET("/entryexitlog", guard("entryexitlog", "read"), listEntryExitLogs)
	r.GET("/entryexitlog/:id", guard("entryexitlog", "read"), getEntryExitLog)
	r.POST("/entryexitlog", guard("entryexitlog", "create"), createEntryExitLog)
	r.PUT("/entryexitlog/:id", guard("entryexitlog", "update"), updateEntryExitLog)
	r.DELETE("/entryexitlog/:id", guard("entryexitlog", "delete"), deleteEntryExitLog)
}

func listEntryExitLogs(c *gin.Context) {
	records, err := Storage(c).ListEntryExitLogs(c.Request.Context(), limitQuery(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func getEntryExitLog(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	record, err := Storage(c).GetEntryExitLog(c.Request.Context(), id)
	if err != nil {
		abortStorageError(c, err, "EntryExitLog", id)
		return
	}
	c.JSON(http.StatusOK, record)
}

func createEntryExitLog(c *gin.Context) {
	var record storage.EntryExitLog
	if !bindJSON(c, &record) {
		return
	}
	if err := Storage(c).CreateEntryExitLog(c.Request.Context(), &record); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func updateEntryExitLog(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var record storage.EntryExitLog
	if !bindJSON(c, &record) {
		return
	}
	if err := Storage(c).UpdateEntryExitLog(c.Request.Context(), id, &record); err != nil {
		abortStorageError(c, err, "EntryExitLog", id)
		return
	}
	c.JSON(http.StatusOK, record)
}

func deleteEntryExitLog(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := Storage(c).DeleteEntryExitLog(c.Request.Context(), id); err != nil {
		abortStorageError(c, err, "EntryExitLog", id)
		return
	}
	deleted(c, "EntryExitLog", id)
}
