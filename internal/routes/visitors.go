package routes

import (
	"net/http"

	"vehicle-access-control/internal/storage"

	"github.com/gin-gonic/gin"
)

func VisitorRoutes(r *gin.RouterGroup, guard Guard) {
	r.GET("/visitor", guard("visitor", "read"), listVisitors)
	r.GET("/visitor/:id", guard("visitor", "read"), getVisitor)
	r.POST("/visitor", guard("visitor", "create"), createVisitor)
	r.PUT("/visitor/:id", guard("visitor", "update"), updateVisitor)
	r.DELETE("/visitor/:id", guard("visitor", "delete"), deleteVisitor)
}

func listVisitors(c *gin.Context) {
	records, err := Storage(c).ListVisitors(c.Request.Context(), limitQuery(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func getVisitor(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	record, err := Storage(c).GetVisitor(c.Request.Context(), id)
	if err != nil {
		abortStorageError(c, err, "Visitor", id)
		return
	}
	c.JSON(http.StatusOK, record)
}

func createVisitor(c *gin.Context) {
	var record storage.Visitor
	if !bindJSON(c, &record) {
		return
	}
	if err := Storage(c).CreateVisitor(c.Request.Context(), &record); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func updateVisitor(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var record storage.Visitor
	if !bindJSON(c, &record) {
		return
	}
	if err := Storage(c).UpdateVisitor(c.Request.Context(), id, &record); err != nil {
		abortStorageError(c, err, "Visitor", id)
		return
	}
	c.JSON(http.StatusOK, record)
}

func deleteVisitor(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := Storage(c).DeleteVisitor(c.Request.Context(), id); err != nil {
		abortStorageError(c, err, "Visitor", id)
		return
	}
	deleted(c, "Visitor", id)
}
