package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const readinessTimeout = 5 * time.Second

// Satisfied by pgxpool.Pool and minio.Client respectively.
type dbPinger interface {
	Ping(ctx context.Context) error
}

type bucketChecker interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
}

func registerHealthRoutes(router *gin.Engine, deps Dependencies) {
	router.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/health/ready", readinessHandler(deps.DB, deps.ObjectStore, deps.Config.MinIO.Bucket))
}

// readinessHandler reports ready only when the record store answers and the
// media bucket is reachable. A missing bucket counts as degraded too: every
// issued upload URL and every public display URL points into it.
func readinessHandler(db dbPinger, store bucketChecker, bucket string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "degraded",
				"component": "postgres",
				"error":     err.Error(),
			})
			return
		}

		exists, err := store.BucketExists(ctx, bucket)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "degraded",
				"component": "minio",
				"bucket":    bucket,
				"error":     err.Error(),
			})
			return
		}
		if !exists {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "degraded",
				"component": "minio",
				"bucket":    bucket,
				"error":     "media bucket does not exist",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
