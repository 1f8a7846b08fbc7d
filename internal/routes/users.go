package routes

import (
	"net/http"

	"vehicle-access-control/internal/storage"

	"github.com/gin-gonic/gin"
)

func UserRoutes(r *gin.RouterGroup, guard Guard) {
	r.GET("/user", guard("user", "read"), listUsers)
	r.GET("/user/:id", guard("user", "read"), getUser)
	r.POST("/user", guard("user", "create"), createUser)
	r.PUT("/user/:id", guard("user", "update"), updateUser)
	r.DELETE("/user/:id", guard("user", "delete"), deleteUser)
}

func listUsers(c *gin.Context) {
	records, err := Storage(c).ListUsers(c.Request.Context(), limitQuery(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func getUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	record, err := Storage(c).GetUser(c.Request.Context(), id)
	if err != nil {
		abortStorageError(c, err, "User", id)
		return
	}
	c.JSON(http.StatusOK, record)
}

func createUser(c *gin.Context) {
	var record storage.User
	if !bindJSON(c, &record) {
		return
	}
	if err := Storage(c).CreateUser(c.Request.Context(), &record); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func updateUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var record storage.User
	if !bindJSON(c, &record) {
		return
	}
	if err := Storage(c).UpdateUser(c.Request.Context(), id, &record); err != nil {
		abortStorageError(c, err, "User", id)
		return
	}
	c.JSON(http.StatusOK, record)
}

func deleteUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := Storage(c).DeleteUser(c.Request.Context(), id); err != nil {
		abortStorageError(c, err, "User", id)
		return
	}
	deleted(c, "User", id)
}
