package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/alimikegami/point-of-sales/catalog-service/config"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/controller"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/infrastructure/tracing"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/middleware"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/repository"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/service"
	"github.com/alimikegami/point-of-sales/catalog-service/pkg/response"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
)

type App struct {
	DB            *mongo.Database
	KafkaProducer *kafka.Conn
	Config        *config.Config
	Server        *echo.Echo
	metrics       *echo.Echo
}

func (app *App) Start() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if app.Config.Environment == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger
	zerolog.DefaultContextLogger = &logger

	traceProvider, err := tracing.InitTracing(context.Background(), app.Config.TracingConfig.CollectorHost, app.Config.Environment)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize tracing")
	} else {
		defer func() {
			if err := traceProvider.Shutdown(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Failed to shutdown tracing")
			}
		}()
	}

	tracer := otel.Tracer(tracing.ServiceName)

	productRepo := repository.CreateNewMongoDBRepository(app.DB)
	referenceRepo := repository.CreateNewMongoDBReferenceRepository(app.DB)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := productRepo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensuring indexes: %w", err)
	}

	var producer service.KafkaWriter
	if app.KafkaProducer != nil {
		producer = app.KafkaProducer
	} else {
		logger.Warn().Msg("Kafka producer is not configured, product events are disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = controller.NewRequestValidator()

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// span creation and naming
			ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
			defer span.End()

			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	})

	// Used empty string so that metrics are not prefixed with the service name
	e.Use(echoprometheus.NewMiddleware(""))

	app.metrics = echo.New()
	app.metrics.HideBanner = true
	app.metrics.GET("/metrics", echoprometheus.NewHandler())
	go func() {
		if err := app.metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	g := e.Group("/api/v1")
	g.Use(middleware.Logger)

	svc := service.CreateProductService(productRepo, referenceRepo, producer)
	controller.CreateProductController(g, svc, middleware.IsLoggedIn(app.Config.JWTSecret))

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "Hello, World!", nil)
	})

	app.Server = e

	if err := e.Start(fmt.Sprintf(":%s", app.Config.ServicePort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (app *App) StopServer() error {
	if app.Server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if app.metrics != nil {
		if err := app.metrics.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to shutdown metrics server")
		}
	}

	return app.Server.Shutdown(ctx)
}
