package routes

import (
	"net/http"

	"vehicle-access-control/internal/storage"

	"github.com/gin-gonic/gin"
)

func AccessPermissionRoutes(r *gin.RouterGroup, guard Guard) {
	r.GET("/accesspermission", guard("accesspermission", "read"), listAccessPermissions)
	r.GET("/accesspermission/:id", guard("accesspermission", "read"), getAccessPermission)
	r.POST("/accesspermission", guard("accesspermission", "create"), createAccessPermission)
	r.PUT("/accesspermission/:id", guard("accesspermission", "update"), updateAccessPermission)
	r.DELETE("/accesspermission/:id", guard("accesspermission", "delete"), deleteAccessPermission)
}

func listAccessPermissions(c *gin.Context) {
	records, err := Storage(c).ListAccessPermissions(c.Request.Context(), limitQuery(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func getAccessPermission(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	record, err := Storage(c).GetAccessPermission(c.Request.Context(), id)
	if err != nil {
		abortStorageError(c, err, "AccessPermission", id)
		return
	}
	c.JSON(http.StatusOK, record)
}

func createAccessPermission(c *gin.Context) {
	var record storage.AccessPermission
	if !bindJSON(c, &record) {
		return
	}
	if err := Storage(c).CreateAccessPermission(c.Request.Context(), &record); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func updateAccessPermission(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var record storage.AccessPermission
	if !bindJSON(c, &record) {
		return
	}
	if err := Storage(c).UpdateAccessPermission(c.Request.Context(), id, &record); err != nil {
		abortStorageError(c, err, "AccessPermission", id)
		return
	}
	c.JSON(http.StatusOK, record)
}

func deleteAccessPermission(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := Storage(c).DeleteAccessPermission(c.Request.Context(), id); err != nil {
		abortStorageError(c, err, "AccessPermission", id)
		return
	}
	deleted(c, "AccessPermission", id)
}
