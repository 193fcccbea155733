package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pipewatch/pipewatch/internal/entity"
	"github.com/pipewatch/pipewatch/internal/metrics"
	"github.com/pipewatch/pipewatch/internal/repository"
	"github.com/pipewatch/pipewatch/internal/usecase"
	"github.com/samber/do"
)

func RegisterMetricsAPI(injector *do.Injector, e *echo.Echo) {
	g := e.Group("/api")

	g.GET("/projects/:id/metrics", func(c echo.Context) error {
		start, end, err := parseWindow(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		kind := usecase.MetricsKind(c.QueryParam("kind"))
		if kind == "" {
			kind = usecase.MetricsKindPerformance
		}

		uc := do.MustInvoke[usecase.GetMetricsUsecase](injector)
		result, err := uc.Execute(c.Request().Context(), entity.NewID(c.Param("id")), start, end, kind)
		if err != nil {
			if errors.Is(err, entity.ErrInvalid) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
			}
			if errors.Is(err, repository.ErrNotFound) {
				return c.NoContent(http.StatusNotFound)
			}
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusOK, result)
	})

	g.GET("/projects/:id/trends", func(c echo.Context) error {
		start, end, err := parseWindow(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		interval := metrics.Interval(c.QueryParam("interval"))
		if interval == "" {
			interval = metrics.IntervalDay
		}

		uc := do.MustInvoke[usecase.GetTrendsUsecase](injector)
		points, err := uc.Execute(c.Request().Context(), entity.NewID(c.Param("id")), start, end, interval)
		if err != nil {
			if errors.Is(err, entity.ErrInvalid) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
			}
			if errors.Is(err, repository.ErrNotFound) {
				return c.NoContent(http.StatusNotFound)
			}
			return c.NoContent(http.StatusInternalServerError)
		}

		type response struct {
			Interval metrics.Interval     `json:"interval"`
			Trends   []metrics.TrendPoint `json:"trends"`
		}
		return c.JSON(http.StatusOK, &response{Interval: interval, Trends: points})
	})

	g.GET("/architectures/comparison", func(c echo.Context) error {
		start, end, err := parseWindow(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		uc := do.MustInvoke[usecase.CompareArchitecturesUsecase](injector)
		cmp, err := uc.Execute(c.Request().Context(), start, end)
		if err != nil {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusOK, cmp)
	})

	g.POST("/projects/:id/reports", func(c echo.Context) error {
		type request struct {
			Type entity.ReportType `json:"type"`
		}
		var req request
		if err := c.Bind(&req); err != nil {
			return c.NoContent(http.StatusBadRequest)
		}
		if req.Type == "" {
			req.Type = entity.ReportTypePerformance
		}
		start, end, err := parseWindow(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		uc := do.MustInvoke[usecase.GenerateReportUsecase](injector)
		report, err := uc.Execute(c.Request().Context(), usecase.ReportRequest{
			ProjectID: entity.NewID(c.Param("id")),
			Type:      req.Type,
			Start:     start,
			End:       end,
		})
		if err != nil {
			if errors.Is(err, entity.ErrInvalid) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
			}
			if errors.Is(err, repository.ErrNotFound) {
				return c.NoContent(http.StatusNotFound)
			}
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusCreated, report)
	})

	g.POST("/reports/architecture", func(c echo.Context) error {
		start, end, err := parseWindow(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		uc := do.MustInvoke[usecase.GenerateReportUsecase](injector)
		report, err := uc.Execute(c.Request().Context(), usecase.ReportRequest{
			Type:  entity.ReportTypeArchitecture,
			Start: start,
			End:   end,
		})
		if err != nil {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusCreated, report)
	})

	g.GET("/reports", func(c echo.Context) error {
		uc := do.MustInvoke[usecase.ListReportsUsecase](injector)
		reports, err := uc.Execute(c.Request().Context(), entity.NewID(c.QueryParam("project_id")))
		if err != nil {
			return c.NoContent(http.StatusInternalServerError)
		}

		type response struct {
			Reports []*entity.AnalysisReport `json:"reports"`
		}
		return c.JSON(http.StatusOK, &response{Reports: reports})
	})

	g.GET("/reports/:id", func(c echo.Context) error {
		uc := do.MustInvoke[usecase.GetReportUsecase](injector)
		report, err := uc.Execute(c.Request().Context(), entity.NewID(c.Param("id")))
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return c.NoContent(http.StatusNotFound)
			}
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusOK, report)
	})
}
