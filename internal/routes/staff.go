package routes

import (
	"net/http"

	"vehicle-access-control/internal/storage"

	"github.com/gin-gonic/gin"
)

func SecurityStaffRoutes(r *gin.RouterGroup, guard Guard) {
	r.GET("/securitystaff", guard("securitystaff", "read"), listSecurityStaff)
	r.GET("/securitystaff/:id", guard("securitystaff", "read"), getSecurityStaff)
	r.POST("/securitystaff", guard("securitystaff", "create"), createSecurityStaff)
	r.PUT("/securitystaff/:id", guard("securitystaff", "update"), updateSecurityStaff)
	r.DELETE("/securitystaff/:id", guard("securitystaff", "delete"), deleteSecurityStaff)
}

func listSecurityStaff(c *gin.Context) {
	records, err := Storage(c).ListSecurityStaff(c.Request.Context(), limitQuery(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func getSecurityStaff(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	record, err := Storage(c).GetSecurityStaff(c.Request.Context(), id)
	if err != nil {
		abortStorageError(c, err, "SecurityStaff", id)
		return
	}
	c.JSON(http.StatusOK, record)
}

func createSecurityStaff(c *gin.Context) {
	var record storage.SecurityStaff
	if !bindJSON(c, &record) {
		return
	}
	if err := Storage(c).CreateSecurityStaff(c.Request.Context(), &record); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func updateSecurityStaff(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var record storage.SecurityStaff
	if !bindJSON(c, &record) {
		return
	}
	if err := Storage(c).UpdateSecurityStaff(c.Request.Context(), id, &record); err != nil {
		abortStorageError(c, err, "SecurityStaff", id)
		return
	}
	c.JSON(http.StatusOK, record)
}

func deleteSecurityStaff(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := Storage(c).DeleteSecurityStaff(c.Request.Context(), id); err != nil {
		abortStorageError(c, err, "SecurityStaff", id)
		return
	}
	deleted(c, "SecurityStaff", id)
}
