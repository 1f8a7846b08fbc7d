package routes

import (
	"net/http"

	"vehicle-access-control/internal/notify"
	"vehicle-access-control/internal/storage"

	"github.com/gin-gonic/gin"
)

func IncidentReportRoutes(r *gin.RouterGroup, guard Guard) {
	r.GET("/incidentreport", guard("incidentreport", "read"), listIncidentReports)
	r.GET("/incidentreport/:id", guard("incidentreport", "read"), getIncidentReport)
	r.POST("/incidentreport", guard("incidentreport", "create"), createIncidentReport)
	r.PUT("/incidentreport/:id", guard("incidentreport", "update"), updateIncidentReport)
	r.DELETE("/incidentreport/:id", guard("incidentreport", "delete"), deleteIncidentReport)
}

func listIncidentReports(c *gin.Context) {
	records, err := Storage(c).ListIncidentReports(c.Request.Context(), limitQuery(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func getIncidentReport(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	record, err := Storage(c).GetIncidentReport(c.Request.Context(), id)
	if err != nil {
		abortStorageError(c, err, "IncidentReport", id)
		return
	}
	c.JSON(http.StatusOK, record)
}

func createIncidentReport(c *gin.Context) {
	var record storage.IncidentReport
	if !bindJSON(c, &record) {
		return
	}
	if err := Storage(c).CreateIncidentReport(c.Request.Context(), &record); err != nil {
		AbortWithError(c, err)
		return
	}

	// Delivery is best-effort and does not hold up the response.
	if n, ok := c.Get("notifier"); ok {
		n.(*notify.Notifier).IncidentReported(&record)
	}

	c.JSON(http.StatusCreated, record)
}

func updateIncidentReport(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var record storage.IncidentReport
	if !bindJSON(c, &record) {
		return
	}
	if err := Storage(c).UpdateIncidentReport(c.Request.Context(), id, &record); err != nil {
		abortStorageError(c, err, "IncidentReport", id)
		return
	}
	c.JSON(http.StatusOK, record)
}

func deleteIncidentReport(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := Storage(c).DeleteIncidentReport(c.Request.Context(), id); err != nil {
		abortStorageError(c, err, "IncidentReport", id)
		return
	}
	deleted(c, "IncidentReport", id)
}
