package router

import (
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"gamersdb/backend/internal/catalog"
	"gamersdb/backend/internal/handler"
	"gamersdb/backend/internal/hub"
)

// Config holds the dependencies of the HTTP router.
type Config struct {
	Catalog        *catalog.Service
	Hub            *hub.Hub
	Logger         *slog.Logger
	AllowedOrigins []string
	// StaticDir, when set, serves the web client with an index.html fallback.
	StaticDir string
}

// Setup builds the gin engine with every route registered.
func Setup(cfg Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	games := handler.NewGameHandler(cfg.Catalog, cfg.Logger)
	events := handler.NewEventHandler(cfg.Hub)

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoints
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		gameRoutes := apiV1.Group("/games")
		{
			gameRoutes.GET("", games.GetGames)
			gameRoutes.POST("", games.CreateGame)
			gameRoutes.GET("/playable", games.GetPlayableGames) // Must be before /:id
			gameRoutes.GET("/:id", games.GetGameByID)
			gameRoutes.PUT("/:id", games.UpdateGame)
			gameRoutes.DELETE("/:id", games.DeleteGame)
			gameRoutes.POST("/:id/owners", games.AddOwner)
			gameRoutes.DELETE("/:id/owners/:name", games.RemoveOwner)
		}

		ownerRoutes := apiV1.Group("/owners")
		{
			ownerRoutes.GET("", games.GetOwners)
			ownerRoutes.GET("/:name/games", games.GetOwnerGames)
		}

		apiV1.GET("/events", events.StreamEvents)
	}

	router.NoRoute(noRoute(cfg.StaticDir))

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// noRoute answers unknown API paths with JSON and everything else from the
// static client build, falling back to its index.html.
func noRoute(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if staticDir == "" || strings.HasPrefix(p, "/api/") || c.Request.Method != http.MethodGet {
			c.JSON(http.StatusNotFound, handler.ErrorResponse{Error: "Route not found", Code: handler.CodeNotFound})
			return
		}

		file := filepath.Join(staticDir, filepath.FromSlash(path.Clean("/"+p)))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
		c.File(filepath.Join(staticDir, "index.html"))
	}
}
