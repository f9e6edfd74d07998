package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SignedURLsIssued counts upload URLs handed out by the media service.
	SignedURLsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "menucms_media_signed_urls_issued_total",
		Help: "Number of presigned upload URLs issued.",
	})

	// DeleteAttempts counts object deletions attempted by the media service.
	DeleteAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "menucms_media_delete_attempts_total",
		Help: "Number of object deletions attempted.",
	})

	// DeleteFailures counts object deletions that did not succeed.
	DeleteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "menucms_media_delete_failures_total",
		Help: "Number of object deletions that failed.",
	})
)

// Register attaches the Prometheus metrics endpoint to the router.
func Register(router *gin.Engine, path string) {
	router.GET(path, gin.WrapH(promhttp.Handler()))
}
