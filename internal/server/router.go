package server

import (
	"github.com/chloe-ha/menu-cms/internal/auth"
	"github.com/chloe-ha/menu-cms/internal/config"
	"github.com/chloe-ha/menu-cms/internal/media"
	"github.com/chloe-ha/menu-cms/internal/metrics"
	"github.com/chloe-ha/menu-cms/internal/restaurant"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
)

// Dependencies groups the services required by the HTTP router.
type Dependencies struct {
	Config            config.Config
	DB                *pgxpool.Pool
	ObjectStore       *minio.Client
	AuthService       *auth.Service
	MediaService      *media.Service
	RestaurantService *restaurant.Service
}

// NewRouter builds a Gin engine with foundational middleware and routes.
// Reads are public (the rendering surface consumes them); all mutating
// routes sit behind the admin bearer token.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	registerHealthRoutes(router, deps)
	metrics.Register(router, deps.Config.Metrics.PrometheusPath)

	api := router.Group("/")
	auth.RegisterRoutes(api, deps.AuthService)
	restaurant.RegisterPublicRoutes(api, deps.RestaurantService)

	admin := api.Group("/")
	admin.Use(auth.Middleware(deps.AuthService))
	restaurant.RegisterAdminRoutes(admin, deps.RestaurantService)
	media.RegisterRoutes(admin, deps.MediaService)

	return router
}
