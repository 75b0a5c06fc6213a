package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"storefront/internal/logging"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// BuildInfo is reported by the health and version endpoints
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// RouterConfig configures NewRouter
type RouterConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	StaticDir      string
	Build          BuildInfo

	// TrustedProxies may set X-Forwarded-For; nil trusts none and the buyer
	// IP is the peer address.
	TrustedProxies []string
}

// NewRouter wires the collection routes, health endpoints and static assets.
// pageViews may be nil when the page view log is disabled.
func NewRouter(cfg RouterConfig, collections *CollectionHandler, pageViews *PageViewHandler, log zerolog.Logger) *gin.Engine {
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Warn().Err(err).Strs("proxies", cfg.TrustedProxies).Msg("invalid trusted proxies, trusting none")
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(gin.Recovery())
	router.Use(logging.GinMiddleware(log))

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 0 || (len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	if len(cfg.AllowedMethods) > 0 {
		corsConfig.AllowMethods = cfg.AllowedMethods
	}
	if len(cfg.AllowedHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.AllowedHeaders
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"service":    "storefront",
			"version":    cfg.Build.Version,
			"build_time": cfg.Build.BuildTime,
			"git_commit": cfg.Build.GitCommit,
		})
	})

	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    cfg.Build.Version,
			"build_time": cfg.Build.BuildTime,
			"git_commit": cfg.Build.GitCommit,
		})
	})

	router.GET("/", collections.Home)
	router.GET("/collections/:handle", collections.Collection)
	router.GET("/pages/:type/:handle", collections.MetaobjectCollection)

	if pageViews != nil {
		router.GET("/api/collections/:handle/views", pageViews.Recent)
	}

	setupStaticFiles(router, cfg.StaticDir, log)

	return router
}

// setupStaticFiles serves the favicon and build assets; the CDN usually
// answers these before they reach the service.
func setupStaticFiles(router *gin.Engine, dir string, log zerolog.Logger) {
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			router.Static("/build", filepath.Join(dir, "build"))
			router.StaticFile("/favicon.svg", filepath.Join(dir, "favicon.svg"))
			log.Info().Str("dir", dir).Msg("serving static assets")
		} else {
			log.Debug().Str("dir", dir).Msg("static asset directory not found, skipping")
		}
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
	})
}
