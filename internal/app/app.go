package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/muna8646/airtisan/config"
	"github.com/muna8646/airtisan/internal/controller"
	circuitbreaker "github.com/muna8646/airtisan/internal/infrastructure/circuit-breaker"
	"github.com/muna8646/airtisan/internal/infrastructure/mailer"
	"github.com/muna8646/airtisan/internal/infrastructure/message-queue/kafka"
	"github.com/muna8646/airtisan/internal/infrastructure/storage"
	"github.com/muna8646/airtisan/internal/infrastructure/tracing"
	localmiddleware "github.com/muna8646/airtisan/internal/middleware"
	"github.com/muna8646/airtisan/internal/repository"
	"github.com/muna8646/airtisan/internal/service"
	"github.com/muna8646/airtisan/pkg/response"
	"github.com/rs/zerolog/log"
	kafkago "github.com/segmentio/kafka-go"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

type App struct {
	DB     *sqlx.DB
	Config *config.Config
	Server *echo.Echo

	metrics        *echo.Echo
	traceProvider  *sdktrace.TracerProvider
	kafkaProducer  *kafkago.Writer
	eventPublisher *service.KafkaEventPublisher
}

// Init builds the router and every dependency behind it. Start calls it when
// it has not run yet.
func (app *App) Init() error {
	traceProvider, err := tracing.InitTracing(app.Config.TracingConfig.CollectorHost)
	if err != nil {
		return err
	}
	app.traceProvider = traceProvider
	tracer := traceProvider.Tracer(tracing.ServiceName)

	imageStorage, err := storage.CreateLocalImageStorage(app.Config.UploadConfig.Dir)
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()), trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()

			req := c.Request()
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	})

	// empty subsystem keeps metric names unprefixed
	e.Use(echoprometheus.NewMiddleware(""))
	e.Use(localmiddleware.Logger)

	e.Static(storage.URLPrefix, imageStorage.Dir())

	var publisher service.EventPublisher = service.NoopEventPublisher{}
	app.kafkaProducer = kafka.CreateKafkaProducer(app.Config)
	if app.kafkaProducer != nil {
		app.eventPublisher = service.CreateKafkaEventPublisher(app.kafkaProducer, circuitbreaker.CreateCircuitBreaker("event-publisher"))
		publisher = app.eventPublisher
	}

	var notifier service.OrderNotifier
	if m := mailer.CreateMailer(app.Config); m != nil {
		notifier = m
	}

	authenticate := localmiddleware.Authenticate(app.Config.JWTConfig.JWTSecret)

	g := e.Group("/api/v1")

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "pong", nil)
	})

	userRepo := repository.CreateNewUserRepository(app.DB)
	productRepo := repository.CreateNewProductRepository(app.DB)
	orderRepo := repository.CreateNewOrderRepository(app.DB)

	authSvc := service.CreateNewAuthService(userRepo, app.Config, publisher)
	productSvc := service.CreateNewProductService(productRepo, imageStorage, app.Config, publisher)
	orderSvc := service.CreateNewOrderService(orderRepo, publisher, notifier)

	controller.CreateAuthController(g, authSvc, authenticate)
	controller.CreateProductController(g, productSvc, authenticate)
	controller.CreateOrderController(g, orderSvc, authenticate)

	app.Server = e

	app.metrics = echo.New()
	app.metrics.HideBanner = true
	app.metrics.HidePort = true
	app.metrics.GET("/metrics", echoprometheus.NewHandler())

	return nil
}

// Start blocks until the server stops. A graceful StopServer is not an error.
func (app *App) Start() error {
	if app.Server == nil {
		if err := app.Init(); err != nil {
			return err
		}
	}

	go func() {
		if err := app.metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("component", "MetricsServer").Msg("Failed to start metrics server")
		}
	}()

	log.Info().Str("port", app.Config.ServicePort).Msg("Starting server")

	err := app.Server.Start(fmt.Sprintf(":%s", app.Config.ServicePort))
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errList []error

	if app.Server != nil {
		errList = append(errList, app.Server.Shutdown(ctx))
	}

	if app.metrics != nil {
		errList = append(errList, app.metrics.Shutdown(ctx))
	}

	// queued events are flushed before the writer goes away
	if app.eventPublisher != nil {
		errList = append(errList, app.eventPublisher.Close(ctx))
	}

	if app.kafkaProducer != nil {
		errList = append(errList, app.kafkaProducer.Close())
	}

	if app.traceProvider != nil {
		errList = append(errList, app.traceProvider.Shutdown(ctx))
	}

	return errors.Join(errList...)
}
