package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pipewatch/pipewatch/internal/entity"
	"github.com/pipewatch/pipewatch/internal/lifecycle"
	"github.com/pipewatch/pipewatch/internal/repository"
	"github.com/pipewatch/pipewatch/internal/usecase"
	"github.com/samber/do"
)

func RegisterRestAPI(injector *do.Injector, e *echo.Echo) {
	g := e.Group("/api")

	g.POST("/projects", func(c echo.Context) error {
		type request struct {
			Name           string             `json:"name"`
			Description    string             `json:"description"`
			RepositoryURL  string             `json:"repository_url"`
			ServiceType    entity.ServiceType `json:"service_type"`
			ArchitectureID *entity.ID         `json:"architecture_id"`
		}
		var req request
		if err := c.Bind(&req); err != nil {
			return c.NoContent(http.StatusBadRequest)
		}

		uc := do.MustInvoke[usecase.CreateProjectUsecase](injector)
		project, err := uc.Execute(c.Request().Context(), &entity.Project{
			Name:           req.Name,
			Description:    req.Description,
			RepositoryURL:  req.RepositoryURL,
			ServiceType:    req.ServiceType,
			ArchitectureID: req.ArchitectureID,
		})
		if err != nil {
			if errors.Is(err, entity.ErrInvalid) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
			}
			if errors.Is(err, entity.ErrConflict) {
				return c.NoContent(http.StatusConflict)
			}
			return c.NoContent(http.StatusInternalServerError)
		}

		return c.JSON(http.StatusCreated, project)
	})

	g.GET("/projects", func(c echo.Context) error {
		uc := do.MustInvoke[usecase.ListProjectUsecase](injector)
		projects, err := uc.Execute(c.Request().Context())
		if err != nil {
			return c.NoContent(http.StatusInternalServerError)
		}

		type response struct {
			Projects []*entity.Project `json:"projects"`
		}
		return c.JSON(http.StatusOK, &response{Projects: projects})
	})

	g.GET("/projects/:id", func(c echo.Context) error {
		uc := do.MustInvoke[usecase.GetProjectUsecase](injector)
		project, err := uc.Execute(c.Request().Context(), entity.NewID(c.Param("id")))
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return c.NoContent(http.StatusNotFound)
			}
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusOK, project)
	})

	g.GET("/projects/:id/runs", func(c echo.Context) error {
		filter, err := parseRunFilter(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		uc := do.MustInvoke[usecase.ListRunsUsecase](injector)
		runs, err := uc.Execute(c.Request().Context(), entity.NewID(c.Param("id")), filter)
		if err != nil {
			return c.NoContent(http.StatusInternalServerError)
		}

		type response struct {
			Runs []*entity.PipelineRun `json:"runs"`
		}
		return c.JSON(http.StatusOK, &response{Runs: runs})
	})

	g.GET("/runs/:id", func(c echo.Context) error {
		uc := do.MustInvoke[usecase.GetRunUsecase](injector)
		run, err := uc.Execute(c.Request().Context(), entity.NewID(c.Param("id")))
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return c.NoContent(http.StatusNotFound)
			}
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusOK, run)
	})

	g.PATCH("/runs/:id/status", func(c echo.Context) error {
		type request struct {
			Status       entity.PipelineStatus `json:"status"`
			ErrorMessage string                `json:"error_message"`
		}
		var req request
		if err := c.Bind(&req); err != nil {
			return c.NoContent(http.StatusBadRequest)
		}

		uc := do.MustInvoke[usecase.TransitionRunUsecase](injector)
		run, err := uc.Execute(c.Request().Context(), entity.NewID(c.Param("id")), req.Status, req.ErrorMessage)
		if err != nil {
			if errors.Is(err, lifecycle.ErrInvalidTransition) {
				return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
			}
			if errors.Is(err, entity.ErrInvalid) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
			}
			if errors.Is(err, repository.ErrNotFound) {
				return c.NoContent(http.StatusNotFound)
			}
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusOK, run)
	})

	g.POST("/runs/:id/stages", func(c echo.Context) error {
		type request struct {
			Stage      entity.PipelineStage `json:"stage"`
			Event      usecase.StageEvent   `json:"event"`
			Message    string               `json:"message"`
			StackTrace string               `json:"stack_trace"`
			Duration   float64              `json:"duration"`
		}
		var req request
		if err := c.Bind(&req); err != nil {
			return c.NoContent(http.StatusBadRequest)
		}

		uc := do.MustInvoke[usecase.LogStageUsecase](injector)
		entry, err := uc.Execute(c.Request().Context(), usecase.LogStageInput{
			RunID:      entity.NewID(c.Param("id")),
			Stage:      req.Stage,
			Event:      req.Event,
			Message:    req.Message,
			StackTrace: req.StackTrace,
			Duration:   req.Duration,
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
		return c.JSON(http.StatusCreated, entry)
	})

	g.GET("/runs/:id/logs", func(c echo.Context) error {
		uc := do.MustInvoke[usecase.ListRunLogsUsecase](injector)
		entries, err := uc.Execute(c.Request().Context(), entity.NewID(c.Param("id")))
		if err != nil {
			return c.NoContent(http.StatusInternalServerError)
		}

		type response struct {
			Logs []*entity.PipelineLogEntry `json:"logs"`
		}
		return c.JSON(http.StatusOK, &response{Logs: entries})
	})
}
