package server

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pipewatch/pipewatch/internal/githubapi"
	"github.com/pipewatch/pipewatch/internal/repository"
	"github.com/pipewatch/pipewatch/internal/server/routes"
	"github.com/pipewatch/pipewatch/internal/usecase"
	"github.com/rs/zerolog"
	"github.com/samber/do"
	"gorm.io/gorm"
)

type Config struct {
	Port        int
	DataDir     string
	GitHubToken string
	Logger      zerolog.Logger
}

type Server struct {
	e      *echo.Echo
	config *Config
}

func New(config *Config) *Server {
	e := echo.New()
	e.HidePort = true
	e.HideBanner = true
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogRemoteIP:  true,
		LogHost:      true,
		LogMethod:    true,
		LogURI:       true,
		LogUserAgent: true,
		LogStatus:    true,
		LogLatency:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			config.Logger.Info().
				Str("remote_ip", v.RemoteIP).
				Str("host", v.Host).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("user_agent", v.UserAgent).
				Int("status", v.Status).
				Int64("latency_ms", v.Latency.Milliseconds()).
				Msg("handled request")
			return nil
		},
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			config.Logger.Error().Err(err).Bytes("stack", stack).Send()
			return err
		},
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := config.Logger.WithContext(req.Context())
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	})

	s := &Server{e: e, config: config}
	s.init()
	return s
}

func (s *Server) init() {
	injector := do.New()
	s.injectDependencies(injector)
	s.registerRoutes(injector)
}

func (s *Server) injectDependencies(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*gorm.DB, error) {
		return repository.NewSQLiteDB(s.config.DataDir)
	})
	do.Provide(injector, func(i *do.Injector) (repository.ProjectRepository, error) {
		return repository.NewProjectRepository(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (repository.PipelineRunRepository, error) {
		return repository.NewPipelineRunRepository(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (repository.PipelineLogRepository, error) {
		return repository.NewPipelineLogRepository(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (repository.WebhookDeliveryRepository, error) {
		return repository.NewWebhookDeliveryRepository(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (repository.AnalysisReportRepository, error) {
		return repository.NewAnalysisReportRepository(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (githubapi.JobFetcher, error) {
		return githubapi.NewClient(s.config.GitHubToken), nil
	})

	do.Provide(injector, usecase.NewIngestEventUsecase)
	do.Provide(injector, usecase.NewTransitionRunUsecase)
	do.Provide(injector, usecase.NewLogStageUsecase)
	do.Provide(injector, usecase.NewCreateProjectUsecase)
	do.Provide(injector, usecase.NewListProjectUsecase)
	do.Provide(injector, usecase.NewGetProjectUsecase)
	do.Provide(injector, usecase.NewListRunsUsecase)
	do.Provide(injector, usecase.NewGetRunUsecase)
	do.Provide(injector, usecase.NewListRunLogsUsecase)
	do.Provide(injector, usecase.NewGetMetricsUsecase)
	do.Provide(injector, usecase.NewGetTrendsUsecase)
	do.Provide(injector, usecase.NewCompareArchitecturesUsecase)
	do.Provide(injector, usecase.NewGenerateReportUsecase)
	do.Provide(injector, usecase.NewListReportsUsecase)
	do.Provide(injector, usecase.NewGetReportUsecase)
}

func (s *Server) registerRoutes(injector *do.Injector) {
	routes.RegisterMisc(injector, s.e)
	routes.RegisterWebhooks(injector, s.e)
	routes.RegisterRestAPI(injector, s.e)
	routes.RegisterMetricsAPI(injector, s.e)
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	s.config.Logger.Info().Str("addr", addr).Msg("starting server")
	return s.e.Start(addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
