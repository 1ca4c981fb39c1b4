package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/nanpeixoto/acervus/internal/config"
	"github.com/nanpeixoto/acervus/internal/infrastructure/database"
	"github.com/nanpeixoto/acervus/internal/infrastructure/gateway"
	"github.com/nanpeixoto/acervus/internal/infrastructure/repository"
	"github.com/nanpeixoto/acervus/internal/present/rest"
	"github.com/nanpeixoto/acervus/internal/service"
	"github.com/nanpeixoto/acervus/internal/usecase"
)

func main() {
	configPath := os.Getenv("ACERVUS_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}

	conf, err := config.Load(configPath)
	if err != nil {
		slog.Error(
			"failed to load config",
			slog.String("error", err.Error()),
			slog.String("path", configPath),
		)
		os.Exit(1)
	}

	if conf.Server.EnableTrace {
		cleanup, err := setupTraceProvider(conf.Server.TraceEndpoint)
		if err != nil {
			panic(err)
		}
		defer cleanup()
	}

	db, err := database.NewPostgres(conf.Server.PostgresDsn)
	if err != nil {
		panic("failed to connect database")
	}

	err = database.MigratePostgres(db)
	if err != nil {
		panic("failed to migrate database")
	}

	rdb := database.NewRedis(conf.Server.RedisAddr, conf.Server.RedisPassword, conf.Server.RedisDB)

	contractRepo := repository.NewContractRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	tagRepo := repository.NewTagRepository(db)
	entityRepo := repository.NewEntityRepository(db)
	documentRepo := repository.NewDocumentRepository(db)

	renderer := gateway.NewRendererGateway(
		conf.Renderer.BaseURL,
		time.Duration(conf.Renderer.TimeoutSeconds)*time.Second,
	)

	signal := service.NewSignalService(rdb)

	contractUsecase := usecase.NewContractUsecase(contractRepo, signal)
	documentUsecase := usecase.NewDocumentUsecase(
		contractRepo,
		templateRepo,
		tagRepo,
		entityRepo,
		documentRepo,
		renderer,
	)

	handler := rest.NewHandler(contractUsecase, documentUsecase, signal)

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware("acervus"))
	}

	handler.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(conf.Server.ListenAddr))
}

func setupTraceProvider(endpoint string) (func(), error) {
	exporter, err := otlptracehttp.New(
		context.Background(),
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res := sdkresource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String("acervus"),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			slog.Error(
				"failed to shutdown tracer provider",
				slog.String("error", err.Error()),
			)
		}
	}
	return cleanup, nil
}
