package usecase

import (
	"context"
	"time"

	"go-jobboard-backend/pkg/logger"
)

const healthCheckTimeout = 2 * time.Second

// PingFunc reports whether a backing service is reachable.
type PingFunc func(ctx context.Context) error

type HealthUsecase interface {
	// Check pings every dependency. ok is false if any of them failed.
	Check(ctx context.Context) (status map[string]string, ok bool)
}

type healthUsecase struct {
	deps map[string]PingFunc
}

func NewHealthUsecase(deps map[string]PingFunc) HealthUsecase {
	return &healthUsecase{deps: deps}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	status := map[string]string{"status": "ok"}
	ok := true
	for name, ping := range u.deps {
		if err := ping(ctx); err != nil {
			logger.Log.Warn("health check failed", "dependency", name, "error", err)
			status[name] = "unavailable"
			ok = false
			continue
		}
		status[name] = "ok"
	}
	if !ok {
		status["status"] = "degraded"
	}
	return status, ok
}
