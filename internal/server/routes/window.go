package routes

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pipewatch/pipewatch/internal/entity"
	"github.com/pipewatch/pipewatch/internal/repository"
)

const defaultWindow = 30 * 24 * time.Hour

// parseWindow reads the from/to query parameters as RFC 3339 timestamps.
// Absent bounds default to the trailing 30 days.
func parseWindow(c echo.Context) (start, end time.Time, err error) {
	end = time.Now().UTC()
	if raw := c.QueryParam("to"); raw != "" {
		end, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return start, end, fmt.Errorf("%w: to must be RFC 3339", entity.ErrInvalid)
		}
	}
	start = end.Add(-defaultWindow)
	if raw := c.QueryParam("from"); raw != "" {
		start, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return start, end, fmt.Errorf("%w: from must be RFC 3339", entity.ErrInvalid)
		}
	}
	if end.Before(start) {
		return start, end, fmt.Errorf("%w: from is after to", entity.ErrInvalid)
	}
	return start, end, nil
}

func parseRunFilter(c echo.Context) (repository.RunFilter, error) {
	var filter repository.RunFilter
	if raw := c.QueryParam("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, fmt.Errorf("%w: from must be RFC 3339", entity.ErrInvalid)
		}
		filter.Start = &t
	}
	if raw := c.QueryParam("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, fmt.Errorf("%w: to must be RFC 3339", entity.ErrInvalid)
		}
		filter.End = &t
	}
	if raw := c.QueryParam("status"); raw != "" {
		status := entity.PipelineStatus(raw)
		filter.Status = &status
	}
	filter.Branch = c.QueryParam("branch")
	return filter, nil
}
