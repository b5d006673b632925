package projection

import (
	"errors"
	"net/http"
	"time"

	"github.com/aevon-lab/stationstats/internal/core/aggregation"
	httperr "github.com/aevon-lab/stationstats/internal/core/errors"
	"github.com/aevon-lab/stationstats/internal/core/station"
	"github.com/aevon-lab/stationstats/internal/core/storage"
	"github.com/aevon-lab/stationstats/internal/report"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RunResponse is the body of GET /v1/runs/:run_id.
type RunResponse struct {
	ID           uuid.UUID       `json:"id"`
	Source       string          `json:"source"`
	StartedAt    string          `json:"started_at"`
	FinishedAt   string          `json:"finished_at"`
	LinesRead    int64           `json:"lines_read"`
	LinesSkipped int64           `json:"lines_skipped"`
	Complete     bool            `json:"complete"`
	Report       report.Document `json:"report"`
	Rendered     string          `json:"rendered"`
}

// RegisterRoutes registers all query API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/report", s.HandleReport)
	r.GET("/v1/stations/:name", s.HandleStation)
	r.GET("/v1/runs/:run_id", s.HandleRun)
}

// HandleReport handles GET /v1/report
// Query parameters: format (text | json, default json)
func (s *Service) HandleReport(c *gin.Context) {
	rep, rendered := s.CurrentReport()

	switch c.DefaultQuery("format", "json") {
	case "text":
		c.String(http.StatusOK, rendered)
	case "json":
		c.JSON(http.StatusOK, report.NewDocument(rep))
	default:
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidRequestError,
			Message:   "Invalid query parameters",
			Details:   "format must be text or json",
		})
	}
}

// HandleStation handles GET /v1/stations/:name
func (s *Service) HandleStation(c *gin.Context) {
	entry, err := s.Station(c.Param("name"))
	if err != nil {
		switch {
		case errors.Is(err, station.ErrKeyTooLong):
			c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
				ErrorType: httperr.HttpInvalidRequestError,
				Message:   "Invalid station name",
				Details:   err.Error(),
			})
		case errors.Is(err, aggregation.ErrStationNotFound):
			c.JSON(http.StatusNotFound, httperr.ErrorResponse{
				ErrorType: httperr.HttpStationNotFound,
				Message:   "Station not found",
				Details:   err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
				ErrorType: httperr.HttpInternalError,
				Message:   "Failed to query station",
				Details:   err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":  report.Summarize(entry),
		"rendered": entry.Stats.String(),
	})
}

// HandleRun handles GET /v1/runs/:run_id
func (s *Service) HandleRun(c *gin.Context) {
	id, err := uuid.Parse(c.Param("run_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidRequestError,
			Message:   "Invalid path parameters",
			Details:   err.Error(),
		})
		return
	}

	run, err := s.Run(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrStoreDisabled):
			c.JSON(http.StatusServiceUnavailable, httperr.ErrorResponse{
				ErrorType: httperr.HttpStoreUnavailable,
				Message:   "Report store is not configured",
			})
		case errors.Is(err, storage.ErrRunNotFound):
			c.JSON(http.StatusNotFound, httperr.ErrorResponse{
				ErrorType: httperr.HttpRunNotFound,
				Message:   "Report run not found",
				Details:   id.String(),
			})
		default:
			c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
				ErrorType: httperr.HttpInternalError,
				Message:   "Failed to load report run",
				Details:   err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, RunResponse{
		ID:           run.ID,
		Source:       run.Source,
		StartedAt:    run.StartedAt.UTC().Format(time.RFC3339),
		FinishedAt:   run.FinishedAt.UTC().Format(time.RFC3339),
		LinesRead:    run.LinesRead,
		LinesSkipped: run.LinesSkipped,
		Complete:     run.Complete,
		Report:       report.NewDocument(run.Report),
		Rendered:     run.Report.String(),
	})
}
