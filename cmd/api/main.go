package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/promotora-credito/app-cadastro/internal/config"
	"github.com/promotora-credito/app-cadastro/internal/handlers"
	"github.com/promotora-credito/app-cadastro/internal/logging"
	"github.com/promotora-credito/app-cadastro/internal/middleware"
	"github.com/promotora-credito/app-cadastro/internal/observability"
	"github.com/promotora-credito/app-cadastro/internal/services"
	"github.com/promotora-credito/app-cadastro/internal/utils"
	"github.com/promotora-credito/app-cadastro/internal/utils/httpclient"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/promotora-credito/app-cadastro/docs"
)

// @title           Cadastro API
// @version         1.0
// @description     Backend for the credit back-office registration forms. Drives the sectioned client wizard, serves the configurable field definitions and proxies simulations and proposals to the lending backend.

// @contact.name   Equipe de Cadastro
// @contact.email  cadastro@promotora-credito.com.br

// @host      localhost:8080
// @BasePath  /v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

// @tag.name wizard
// @tag.description Client registration wizard

// @tag.name forms
// @tag.description Form field configuration

// @tag.name cep
// @tag.description Postal code lookup

// @tag.name simulation
// @tag.description Loan simulations and proposals

// @tag.name health
// @tag.description Health check operations

func main() {
	// Initialize logger first
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logging.Logger.Sync()

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}

	observability.InitTracer()
	defer observability.ShutdownTracer()

	// Sessions live in Redis, so the API cannot start without it
	if err := config.InitRedis(); err != nil {
		logging.Logger.Fatal("failed to initialize Redis", zap.Error(err))
	}

	// Without MongoDB the forms fall back to the built-in defaults
	var sectionRepo services.SectionRepository
	var auditLogger services.AuditLogger
	if err := config.InitMongoDB(); err != nil {
		logging.Logger.Warn("MongoDB unavailable, serving default field configuration", zap.Error(err))
	} else {
		sectionRepo = services.NewMongoSectionRepository(config.MongoDB.Collection(config.AppConfig.FormSectionsCollection))
		if config.AppConfig.AuditEnabled {
			sink := utils.NewMongoAuditSink(config.MongoDB.Collection(config.AppConfig.SubmissionAuditCollection))
			auditLogger = utils.InitAuditWorker(sink, config.AppConfig.AuditWorkers, config.AppConfig.AuditBufferSize)
			defer utils.StopAuditWorker()
		}
	}

	backendPool := httpclient.NewHTTPClientPool(config.AppConfig.HTTPPoolSize, config.AppConfig.BackendTimeout)
	lookupPool := httpclient.NewHTTPClientPool(config.AppConfig.HTTPPoolSize, 5*time.Second)
	defer backendPool.Close()
	defer lookupPool.Close()

	backend := services.NewBackendClient(config.AppConfig.BackendBaseURL, backendPool, logging.Logger.Named("backend"))
	cep := services.NewCEPService(
		config.AppConfig.CEPLookupURL,
		lookupPool,
		config.Redis,
		config.AppConfig.CEPLookupTTL,
		services.NewPerMinuteLimiter(config.AppConfig.CEPLookupLimit, logging.Logger),
		logging.Logger.Named("cep"),
	)
	fields := services.NewFieldConfigService(sectionRepo, config.Redis, config.AppConfig.SectionsCacheTTL, logging.Logger.Named("fields"))
	options := services.NewOptionsService(backend, config.Redis, config.AppConfig.RedisTTL, logging.Logger.Named("options"))
	store := services.NewRedisSessionStore(config.Redis, config.AppConfig.WizardSessionTTL, logging.Logger.Named("sessions"))
	wizard := services.NewWizardService(store, fields, backend, cep, options, auditLogger, logging.Logger.Named("wizard"))
	simulations := services.NewSimulationService(backend, fields, logging.Logger.Named("simulation"))

	health := services.NewHealthService(logging.Logger.Named("health")).
		AddCheck("redis", true, func(ctx context.Context) error {
			return config.Redis.Ping(ctx).Err()
		}).
		AddCheck("mongodb", false, func(ctx context.Context) error {
			if config.MongoDB == nil {
				return errors.New("not connected")
			}
			return config.MongoDB.Client().Ping(ctx, nil)
		})
	health.StartMonitoring(30 * time.Second)
	defer health.Stop()

	if config.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestTiming(),
		middleware.RequestLogger(),
		middleware.RequestTracker(),
		cors.Default(),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	wizardHandlers := handlers.NewWizardHandlers(wizard, logging.Logger.Named("handlers"))
	formHandlers := handlers.NewFormHandlers(fields, logging.Logger.Named("handlers"))
	cepHandlers := handlers.NewCEPHandlers(cep)
	simulationHandlers := handlers.NewSimulationHandlers(simulations)

	v1 := router.Group("/v1")
	{
		v1.GET("/health", handlers.HealthCheck(health))

		authenticated := v1.Group("")
		authenticated.Use(middleware.AuthMiddleware())
		{
			wizardHandlers.RegisterRoutes(authenticated)

			authenticated.GET("/forms/:form_key/sections", formHandlers.GetSections)
			authenticated.GET("/cep/:cep", cepHandlers.LookupCEP)
			authenticated.POST("/simulacoes", simulationHandlers.Simulate)
			authenticated.POST("/propostas", simulationHandlers.CreateProposal)
		}

		admin := authenticated.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.PUT("/forms/:form_key/sections/:section", formHandlers.UpsertSection)
			admin.DELETE("/forms/:form_key/sections/:section", formHandlers.DeleteSection)
		}
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.AppConfig.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logging.Logger.Info("starting server",
			zap.Int("port", config.AppConfig.Port),
			zap.String("environment", config.AppConfig.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Error("server forced to shutdown", zap.Error(err))
	}

	logging.Logger.Info("server exited gracefully")
}
