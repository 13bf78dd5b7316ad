package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"filehive/config"
	"filehive/database"
	"filehive/routes"
	"filehive/services"
	"filehive/storage"
	"filehive/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app, err := NewApplication()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Start(); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// Application wires configuration, connections and the HTTP server together.
type Application struct {
	config       *config.Config
	server       *http.Server
	dbManager    *config.DatabaseManager
	redisManager *config.RedisManager
	router       *gin.Engine
}

func NewApplication() (*Application, error) {
	cfg := config.LoadConfig()
	if err := cfg.ValidateConfig(); err != nil {
		return nil, err
	}

	// Tokens must be signed with the secret the config loaded, which may
	// have come from the .env file read above.
	utils.InitJWT(cfg.JWTSecret, cfg.TokenTTL)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := setupRouter(cfg)

	return &Application{
		config:       cfg,
		dbManager:    config.NewDatabaseManager(cfg),
		redisManager: config.NewRedisManager(cfg),
		router:       router,
		server: &http.Server{
			Addr:         cfg.GetServerAddress(),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}, nil
}

// Start initializes all components and runs the HTTP server until a
// shutdown signal arrives.
func (app *Application) Start() error {
	log.Printf("Starting %s v%s in %s mode",
		app.config.AppName,
		app.config.AppVersion,
		app.config.Environment)

	if err := app.initializeDatabase(); err != nil {
		return err
	}

	if err := app.initializeRedis(); err != nil {
		return err
	}

	if err := app.initializeStorage(); err != nil {
		return err
	}

	routes.SetupRoutes(app.router, app.config)
	log.Println("Routes configured successfully")

	app.startBackgroundJobs()

	go func() {
		log.Printf("Server starting on %s", app.server.Addr)
		if err := app.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()

	return nil
}

func (app *Application) initializeDatabase() error {
	log.Println("Initializing database...")

	if err := app.dbManager.Initialize(); err != nil {
		return err
	}

	// Publishes the global connection and creates indexes
	if err := app.dbManager.SetupDatabase(); err != nil {
		return err
	}

	log.Println("Database initialization completed successfully")
	return nil
}

func (app *Application) initializeRedis() error {
	log.Println("Initializing Redis session store...")

	if err := app.redisManager.Initialize(); err != nil {
		return err
	}
	services.SetRedisClient(app.redisManager.GetClient())

	log.Println("Redis initialization completed successfully")
	return nil
}

func (app *Application) initializeStorage() error {
	log.Println("Initializing storage provider...")

	provider, err := storage.NewProvider(storage.Settings{
		Provider:  app.config.StorageProvider,
		LocalPath: app.config.UploadPath,
		BaseURL:   app.config.AppURL,
		S3: storage.S3Config{
			Bucket:        app.config.S3Bucket,
			Region:        app.config.S3Region,
			Endpoint:      app.config.S3Endpoint,
			AccessKey:     app.config.S3AccessKey,
			SecretKey:     app.config.S3SecretKey,
			PublicBaseURL: app.config.S3PublicBaseURL,
		},
	})
	if err != nil {
		return err
	}

	if err := provider.HealthCheck(); err != nil {
		log.Printf("Warning: storage health check failed: %v", err)
	}
	services.SetStorageProvider(provider)

	log.Printf("Storage provider %q ready", provider.Name())
	return nil
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()

	router.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	// Health check endpoints sit outside the middleware chain
	router.GET("/health", healthCheckHandler())
	router.GET("/version", versionHandler())

	// Local provider serves blobs straight from disk
	if cfg.StorageProvider == "local" {
		router.Static("/uploads", cfg.UploadPath)
	}

	return router
}

func (app *Application) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("Shutdown signal received...")

	app.shutdown()
}

func (app *Application) shutdown() {
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := app.redisManager.Close(); err != nil {
		log.Printf("Error closing Redis: %v", err)
	}

	if err := app.dbManager.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}

	log.Println("Server shutdown complete")
}

func healthCheckHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"service":   "filehive",
			"version":   config.AppConfig.AppVersion,
			"timestamp": time.Now().Unix(),
		}

		if database.GetDatabase() != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := database.GetDatabase().Client().Ping(ctx, nil); err != nil {
				health["status"] = "degraded"
				health["database"] = "unhealthy"
			} else {
				health["database"] = "healthy"
			}
		}

		c.JSON(http.StatusOK, health)
	}
}

func versionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        config.AppConfig.AppName,
			"version":     config.AppConfig.AppVersion,
			"environment": config.AppConfig.Environment,
		})
	}
}

func (app *Application) startBackgroundJobs() {
	// Expired OTPs also have a TTL index; this sweep covers deployments
	// where the monitor is disabled.
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := app.dbManager.CleanupOldData(); err != nil {
				log.Printf("Database cleanup failed: %v", err)
			}
		}
	}()
}
