package routes

import (
	"net/http"

	"vehicle-access-control/internal/storage"

	"github.com/gin-gonic/gin"
)

func ResidentRoutes(r *gin.RouterGroup, guard Guard) {
	r.GET("/resident", guard("resident", "read"), listResidents)
	r.GET("/resident/:id", guard("resident", "read"), getResident)
	r.POST("/resident", guard("resident", "create"), createResident)
	r.PUT("/resident/:id", guard("resident", "update"), updateResident)
	r.DELETE("/resident/:id", guard("resident", "delete"), deleteResident)
}

func listResidents(c *gin.Context) {
	records, err := Storage(c).ListResidents(c.Request.Context(), limitQuery(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func getResident(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	record, err := Storage(c).GetResident(c.Request.Context(), id)
	if err != nil {
		abortStorageError(c, err, "Resident", id)
		return
	}
	c.JSON(http.StatusOK, record)
}

func createResident(c *gin.Context) {
	var record storage.Resident
	if !bindJSON(c, &record) {
		return
	}
	if err := Storage(c).CreateResident(c.Request.Context(), &record); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func updateResident(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var record storage.Resident
	if !bindJSON(c, &record) {
		return
	}
	if err := Storage(c).UpdateResident(c.Request.Context(), id, &record); err != nil {
		abortStorageError(c, err, "Resident", id)
		return
	}
	c.JSON(http.StatusOK, record)
}

func deleteResident(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := Storage(c).DeleteResident(c.Request.Context(), id); err != nil {
		abortStorageError(c, err, "Resident", id)
		return
	}
	deleted(c, "Resident", id)
}
