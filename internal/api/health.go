package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/mealwise/backend/internal/database"
)

// HealthHandler reports database and Redis reachability.
type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// Health returns 503 when the database is down. Redis is optional, so its
// state never changes the status code.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, code := "ok", http.StatusOK
	dbState := "ok"
	if err := database.HealthCheck(ctx, h.db); err != nil {
		status, code = "degraded", http.StatusServiceUnavailable
		dbState = "unavailable"
	}

	redisState := "disabled"
	if h.redis != nil {
		redisState = "ok"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			redisState = "unavailable"
		}
	}

	c.JSON(code, gin.H{
		"status":   status,
		"database": dbState,
		"redis":    redisState,
	})
}
