package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"civicconnect-be/config"
	"civicconnect-be/controllers"
	"civicconnect-be/routes"
	"civicconnect-be/services"
	"civicconnect-be/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found")
	}

	issueBackend, citizenBackend := selectBackends()

	issues := store.NewIssueStore(issueBackend)
	citizens := store.NewCitizenStore(citizenBackend)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := issues.Load(ctx); err != nil {
		log.WithError(err).Fatal("Failed to load issues")
	}
	if err := citizens.Load(ctx); err != nil {
		log.WithError(err).Fatal("Failed to load citizens")
	}

	lifecycle := services.NewLifecycle(issues, citizens)
	gemini := services.NewGemini(os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"))

	controllers.Setup(issues, citizens, lifecycle, gemini)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("FRONTEND_ORIGIN")},
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.AuthRoutes(r)
	routes.IssueRoutes(r)
	routes.EscalationRoutes(r)
	routes.AnalyticsRoutes(r)
	routes.AIRoutes(r)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}

// selectBackends picks the persistence backend from STORE_BACKEND: "mongo",
// "redis" or "memory" (default redis). Redis is also needed by the submit
// rate limiter, so it is connected whenever it is configured.
func selectBackends() (store.IssueBackend, store.CitizenBackend) {
	if os.Getenv("REDIS_ADDRESS") != "" {
		config.ConnectRedis()
	}

	switch os.Getenv("STORE_BACKEND") {
	case "mongo":
		backend := store.NewMongoBackend(config.ConnectDB())
		return backend, backend
	case "memory":
		backend := store.NewMemoryBackend()
		return backend, backend
	default:
		if config.RedisClient == nil {
			config.ConnectRedis()
		}
		backend := store.NewRedisBackend(config.RedisClient)
		return backend, backend
	}
}
