package monitoring

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"ticket-booking/utils"
)

// StartOpsServer runs the out-of-band operations endpoint (health + metrics)
// on its own port, away from the public API.
func StartOpsServer(port string, redisClient *redis.Client) {
	e := echo.New()

	e.GET("/health", func(c echo.Context) error {
		if err := utils.RedisHealthCheck(redisClient); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})

	metrics := promhttp.Handler()
	e.GET("/metrics", func(c echo.Context) error {
		metrics.ServeHTTP(c.Response(), c.Request())
		return nil
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: e,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("ops server stopped: %v", err)
		}
	}()
}
