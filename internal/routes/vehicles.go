package routes

import (
	"net/http"

	"vehicle-access-control/internal/storage"

	"github.com/gin-gonic/gin"
)

func VehicleRoutes(r *gin.RouterGroup, guard Guard) {
	r.GET("/vehicle", guard("vehicle", "read"), listVehicles)
	r.GET("/vehicle/:id", guard("vehicle", "read"), getVehicle)
	r.POST("/vehicle", guard("vehicle", "create"), createVehicle)
	r.PUT("/vehicle/:id", guard("vehicle", "update"), updateVehicle)
	r.DELETE("/vehicle/:id", guard("vehicle", "delete"), deleteVehicle)
}

func listVehicles(c *gin.Context) {
	records, err := Storage(c).ListVehicles(c.Request.Context(), limitQuery(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func getVehicle(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	record, err := Storage(c).GetVehicle(c.Request.Context(), id)
	if err != nil {
		abortStorageError(c, err, "Vehicle", id)
		return
	}
	c.JSON(http.StatusOK, record)
}

func createVehicle(c *gin.Context) {
	var record storage.Vehicle
	if !bindJSON(c, &record) {
		return
	}
	if err := Storage(c).CreateVehicle(c.Request.Context(), &record); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func updateVehicle(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var record storage.Vehicle
	if !bindJSON(c, &record) {
		return
	}
	if err := Storage(c).UpdateVehicle(c.Request.Context(), id, &record); err != nil {
		abortStorageError(c, err, "Vehicle", id)
		return
	}
	c.JSON(http.StatusOK, record)
}

func deleteVehicle(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := Storage(c).DeleteVehicle(c.Request.Context(), id); err != nil {
		abortStorageError(c, err, "Vehicle", id)
		return
	}
	deleted(c, "Vehicle", id)
}
