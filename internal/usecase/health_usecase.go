package usecase

import (
	"context"
	"time"

	"talentmatch-backend/pkg/redis"
	"talentmatch-backend/pkg/storage"

	"github.com/jackc/pgx/v5/pgxpool"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	db    *pgxpool.Pool
	store *storage.Client
}

func NewHealthUsecase(db *pgxpool.Pool, store *storage.Client) HealthUsecase {
	return &healthUsecase{db: db, store: store}
}

// Check pings each backing service. The endpoint always answers 200; a
// degraded dependency shows up in its own field.
func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := map[string]string{
		"status":   "ok",
		"database": "up",
		"redis":    "up",
		"storage":  "up",
	}

	if u.db == nil {
		status["database"] = "unconfigured"
	} else if err := u.db.Ping(ctx); err != nil {
		status["database"] = "down"
		status["status"] = "degraded"
	}

	if client := redis.Client(); client == nil {
		status["redis"] = "unconfigured"
	} else if err := client.Ping(ctx).Err(); err != nil {
		status["redis"] = "down"
		status["status"] = "degraded"
	}

	if u.store == nil {
		status["storage"] = "unconfigured"
	} else if err := u.store.HealthCheck(ctx); err != nil {
		status["storage"] = "down"
		status["status"] = "degraded"
	}

	return status
}
