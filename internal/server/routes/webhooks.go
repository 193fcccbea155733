package routes

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pipewatch/pipewatch/internal/entity"
	"github.com/pipewatch/pipewatch/internal/repository"
	"github.com/pipewatch/pipewatch/internal/usecase"
	"github.com/samber/do"
)

const maxWebhookBody = 1 << 20

func RegisterWebhooks(injector *do.Injector, e *echo.Echo) {
	g := e.Group("/webhooks")

	g.POST("/github", func(c echo.Context) error {
		// only workflow_run events carry pipeline lifecycle data; everything
		// else is acknowledged and ignored
		if c.Request().Header.Get("X-GitHub-Event") != "workflow_run" {
			return c.JSON(http.StatusAccepted, echo.Map{"ignored": true})
		}
		return handleIngest(c, injector, usecase.IngestInput{
			Provider:   entity.ProviderGitHub,
			DeliveryID: c.Request().Header.Get("X-GitHub-Delivery"),
		})
	})

	g.POST("/gitlab", func(c echo.Context) error {
		if c.Request().Header.Get("X-Gitlab-Event") != "Pipeline Hook" {
			return c.JSON(http.StatusAccepted, echo.Map{"ignored": true})
		}
		return handleIngest(c, injector, usecase.IngestInput{
			Provider: entity.ProviderGitLab,
		})
	})

	g.POST("/generic", func(c echo.Context) error {
		// generic integrations name the project out-of-band
		projectID := c.Request().Header.Get("X-Project-ID")
		if projectID == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "X-Project-ID header is required"})
		}
		return handleIngest(c, injector, usecase.IngestInput{
			Provider:   entity.ProviderGeneric,
			DeliveryID: c.Request().Header.Get("X-Event-ID"),
			ProjectID:  entity.NewID(projectID),
		})
	})
}

func handleIngest(c echo.Context, injector *do.Injector, input usecase.IngestInput) error {
	raw, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable body"})
	}
	input.Raw = raw

	uc := do.MustInvoke[usecase.IngestEventUsecase](injector)
	result, err := uc.Execute(c.Request().Context(), input)
	if err != nil {
		// an unresolvable project is the caller's problem, not ours
		if errors.Is(err, entity.ErrInvalid) || errors.Is(err, entity.ErrNotFound) || errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "project could not be resolved from payload"})
		}
		return c.NoContent(http.StatusInternalServerError)
	}
	if result.Duplicate {
		return c.JSON(http.StatusOK, echo.Map{"duplicate": true})
	}
	return c.JSON(http.StatusCreated, result.Run)
}
