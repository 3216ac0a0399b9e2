package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/lowkeyarhan/Socket-P-assignment/internal/repository"
)

// AccessLogCleanup prunes access-log records past the retention window.
type AccessLogCleanup struct {
	Store     repository.AccessLogStore
	Retention time.Duration
	Logger    *slog.Logger
}

func (j *AccessLogCleanup) Name() string { return "access_log_cleanup" }

func (j *AccessLogCleanup) Run(ctx context.Context) error {
	deleted, err := j.Store.DeleteBefore(ctx, time.Now().Add(-j.Retention))
	if err != nil {
		return err
	}
	if deleted > 0 {
		j.Logger.Info("expired access logs removed", "count", deleted)
	}
	return nil
}
