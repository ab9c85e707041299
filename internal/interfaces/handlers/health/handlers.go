package health

import (
	healthsvc "mywork-backend/internal/health"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Handlers holds dependencies for the health endpoints.
type Handlers struct {
	Rdb         *redis.Client
	DB          *gorm.DB
	DatabaseURL string
}

type gormPinger struct{ db *gorm.DB }

func (g gormPinger) Ping() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Check GET /health
func (h *Handlers) Check(c *fiber.Ctx) error {
	var pinger healthsvc.DBPinger
	if h.DB != nil {
		pinger = gormPinger{db: h.DB}
	}
	result := healthsvc.Collect(c.Context(), h.Rdb, pinger, h.DatabaseURL)
	status := fiber.StatusOK
	if result.Status != "ok" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}

// Reset POST /health/reset — clears the traffic counters.
func (h *Handlers) Reset(c *fiber.Ctx) error {
	healthsvc.Reset(c.Context(), h.Rdb)
	return c.JSON(fiber.Map{"status": "ok", "message": "Health stats reset"})
}
