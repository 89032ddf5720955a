package api

import (
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/ekrafft/url-check/internal/configuration"
	"github.com/ekrafft/url-check/internal/record"
)

type ReportQueryParams struct {
	URL   string `form:"url"`
	Limit int    `form:"limit"`
}

func (s *Server) GetSweepReport(c *gin.Context) {
	var queryParams ReportQueryParams

	if err := c.ShouldBindQuery(&queryParams); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid query parameters", "error": err.Error()})
		return
	}

	if queryParams.Limit <= 0 {
		queryParams.Limit = 1000
	}

	rows, err := record.ReadResults(s.resultsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No results recorded yet"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to read results", "error": err.Error()})
		return
	}

	if queryParams.URL != "" {
		filtered := rows[:0:0]
		for _, row := range rows {
			if row.URL == queryParams.URL {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	// Most recent rows are at the tail of the sink.
	if len(rows) > queryParams.Limit {
		rows = rows[len(rows)-queryParams.Limit:]
	}

	c.JSON(http.StatusOK, rows)
}

func (s *Server) UpdateConfigHandler(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to read request body", "error": err.Error()})
		return
	}

	if err := configuration.UpdateConfig(s.configPath, body); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update configuration", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Configuration updated successfully. The next sweep will use it."})
}

func (s *Server) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "url-check",
	})
}
