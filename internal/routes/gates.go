package routes

import (
	"net/http"

	"vehicle-access-control/internal/storage"

	"github.com/gin-gonic/gin"
)

func GateRoutes(r *gin.RouterGroup, guard Guard) {
	r.GET("/gate", guard("gate", "read"), listGates)
	r.GET("/gate/:id", guard("gate", "read"), getGate)
	r.POST("/gate", guard("gate", "create"), createGate)
	r.PUT("/gate/:id", guard("gate", "update"), updateGate)
	r.DELETE("/gate/:id", guard("gate", "delete"), deleteGate)
}

func listGates(c *gin.Context) {
	records, err := Storage(c).ListGates(c.Request.Context(), limitQuery(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func getGate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	record, err := Storage(c).GetGate(c.Request.Context(), id)
	if err != nil {
		abortStorageError(c, err, "Gate", id)
		return
	}
	c.JSON(http.StatusOK, record)
}

func createGate(c *gin.Context) {
	var record storage.Gate
	if !bindJSON(c, &record) {
		return
	}
	if err := Storage(c).CreateGate(c.Request.Context(), &record); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func updateGate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var record storage.Gate
	if !bindJSON(c, &record) {
		return
	}
	if err := Storage(c).UpdateGate(c.Request.Context(), id, &record); err != nil {
		abortStorageError(c, err, "Gate", id)
		return
	}
	c.JSON(http.StatusOK, record)
}

func deleteGate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := Storage(c).DeleteGate(c.Request.Context(), id); err != nil {
		abortStorageError(c, err, "Gate", id)
		return
	}
	deleted(c, "Gate", id)
}
