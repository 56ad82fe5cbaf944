package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/alimikegami/e-commerce/shop-service/config"
	"github.com/alimikegami/e-commerce/shop-service/internal/controller"
	"github.com/alimikegami/e-commerce/shop-service/internal/infrastructure/cache"
	"github.com/alimikegami/e-commerce/shop-service/internal/infrastructure/database/mongodb"
	"github.com/alimikegami/e-commerce/shop-service/internal/infrastructure/message-queue/kafka"
	"github.com/alimikegami/e-commerce/shop-service/internal/infrastructure/storage"
	"github.com/alimikegami/e-commerce/shop-service/internal/infrastructure/tracing"
	localmiddleware "github.com/alimikegami/e-commerce/shop-service/internal/middleware"
	"github.com/alimikegami/e-commerce/shop-service/internal/repository"
	"github.com/alimikegami/e-commerce/shop-service/internal/service"
	"github.com/alimikegami/e-commerce/shop-service/pkg/response"
	"github.com/go-co-op/gocron/v2"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "shop-service"

type App struct {
	DB     *mongo.Database
	Config *config.Config
	Server *echo.Echo

	httpServer    *http.Server
	metricsServer *http.Server
	scheduler     gocron.Scheduler
	shutdownHooks []func(ctx context.Context) error
}

type Services struct {
	User    service.UserService
	Product service.ProductService
	Cart    service.CartService
}

func (app *App) Start() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", serviceName).Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger
	zerolog.DefaultContextLogger = &logger

	if app.Config.JWTConfig.Secret == "" {
		return errors.New("JWT_SECRET must be set")
	}

	traceProvider, err := tracing.InitTracing(app.Config.TracingConfig.CollectorHost, serviceName)
	if err != nil {
		return err
	}
	app.onShutdown(traceProvider.Shutdown)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := mongodb.EnsureIndexes(ctx, app.DB); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	var productCache service.ProductCache
	if app.Config.RedisConfig.Addr != "" {
		c, err := cache.ConnectToRedis(ctx, app.Config.RedisConfig)
		if err != nil {
			log.Error().Err(err).Msg("Failed to connect to redis, serving views uncached")
		} else {
			productCache = c
			app.onShutdown(func(context.Context) error { return c.Close() })
		}
	}

	var publisher service.EventPublisher = kafka.NoopPublisher{}
	if app.Config.KafkaConfig.BrokerAddress != "" {
		writer := kafka.CreateKafkaWriter(app.Config)
		publisher = kafka.NewProducer(writer, serviceName, app.Config.KafkaConfig.WriteTimeout)
		app.onShutdown(func(context.Context) error { return writer.Close() })
	}

	images, err := storage.NewDiskStorage(app.Config.UploadDir, app.Config.PublicBaseURL)
	if err != nil {
		return err
	}

	userRepo := repository.CreateNewMongoDBUserRepository(app.DB)
	productRepo := repository.CreateNewMongoDBProductRepository(app.DB)

	services := Services{
		User:    service.CreateUserService(userRepo, *app.Config),
		Product: service.CreateProductService(productRepo, publisher, productCache, images),
		Cart:    service.CreateCartService(userRepo),
	}

	services.Product.ReconcileSequence()
	if err := app.startScheduler(services.Product); err != nil {
		return err
	}

	e := NewServer(app.Config, services, traceProvider.Tracer(serviceName))
	e.Static(storage.ImagesRoute, images.Dir())

	app.metricsServer, err = startMetricsServer(fmt.Sprintf(":%s", app.Config.MetricsPort))
	if err != nil {
		return err
	}

	app.Server = e
	app.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%s", app.Config.ServicePort),
		Handler:           otelhttp.NewHandler(e, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info().Str("port", app.Config.ServicePort).Msg("Starting server")
	if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// NewServer builds the echo instance with the full middleware chain and every
// route registered.
func NewServer(cfg *config.Config, services Services, tracer trace.Tracer) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	if tracer != nil {
		e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				// span creation and naming
				ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
				defer span.End()

				req := c.Request()
				c.SetRequest(req.WithContext(ctx))

				return next(c)
			}
		})
	}

	// Used empty string so that metrics are not prefixed with the service name
	e.Use(echoprometheus.NewMiddleware(""))
	e.Use(localmiddleware.Logger)

	e.GET("/", func(c echo.Context) error {
		return response.WriteTextResponse(c, "Shop service is running")
	})
	e.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "Hello, World!")
	})

	secrets := append([]string{cfg.JWTConfig.Secret}, cfg.JWTConfig.PreviousSecrets...)
	isLoggedIn := localmiddleware.Authenticate(secrets...)

	g := e.Group("")
	controller.CreateUserController(g, services.User)
	controller.CreateProductController(g, services.Product)
	controller.CreateCartController(g, services.Cart, isLoggedIn)

	return e
}

// startMetricsServer binds before returning so a port clash surfaces as an
// error instead of taking the process down from a goroutine.
func startMetricsServer(addr string) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}

	metrics := echo.New()
	metrics.HideBanner = true
	metrics.GET("/metrics", echoprometheus.NewHandler())

	server := &http.Server{
		Addr:              ln.Addr().String(),
		Handler:           metrics,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Metrics server stopped")
		}
	}()

	return server, nil
}

func (app *App) startScheduler(products service.ProductService) error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = s.NewJob(
		gocron.DurationJob(
			app.Config.SequenceSyncInterval,
		),
		gocron.NewTask(
			products.ReconcileSequence,
		),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	s.Start()
	app.scheduler = s

	return nil
}

func (app *App) onShutdown(hook func(ctx context.Context) error) {
	app.shutdownHooks = append(app.shutdownHooks, hook)
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errList []error
	if app.httpServer != nil {
		errList = append(errList, app.httpServer.Shutdown(ctx))
	}

	if app.metricsServer != nil {
		errList = append(errList, app.metricsServer.Shutdown(ctx))
	}

	if app.scheduler != nil {
		errList = append(errList, app.scheduler.Shutdown())
	}

	for i := len(app.shutdownHooks) - 1; i >= 0; i-- {
		errList = append(errList, app.shutdownHooks[i](ctx))
	}

	if app.DB != nil {
		errList = append(errList, app.DB.Client().Disconnect(ctx))
	}

	return errors.Join(errList...)
}
