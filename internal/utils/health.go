package utils

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const dependencyPingTimeout = 2 * time.Second

type HealthStatus struct {
	Status       string             `json:"status"`
	Timestamp    time.Time          `json:"timestamp"`
	Dependencies []DependencyHealth `json:"services"`
}

type DependencyHealth struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthChecker pings the chat backend's stateful dependencies. A down
// dependency degrades the report rather than failing it; messaging keeps
// working without the cache.
type HealthChecker struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	report := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	}

	if h.DB != nil {
		report.add(h.checkPostgres(ctx))
	}
	if h.Redis != nil {
		report.add(h.checkRedis(ctx))
	}

	return report
}

func (s *HealthStatus) add(dep DependencyHealth) {
	if dep.Status != "up" {
		s.Status = "degraded"
	}
	s.Dependencies = append(s.Dependencies, dep)
}

func (h *HealthChecker) checkPostgres(ctx context.Context) DependencyHealth {
	dep := DependencyHealth{Name: "PostgreSQL", Status: "up"}

	ctx, cancel := context.WithTimeout(ctx, dependencyPingTimeout)
	defer cancel()

	sqlDB, err := h.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		dep.Status = "down"
		dep.Message = err.Error()
	}
	return dep
}

func (h *HealthChecker) checkRedis(ctx context.Context) DependencyHealth {
	dep := DependencyHealth{Name: "Redis", Status: "up"}

	ctx, cancel := context.WithTimeout(ctx, dependencyPingTimeout)
	defer cancel()

	if err := h.Redis.Ping(ctx).Err(); err != nil {
		dep.Status = "down"
		dep.Message = err.Error()
	}
	return dep
}
