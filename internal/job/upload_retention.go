package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/lowkeyarhan/Socket-P-assignment/internal/storage"
)

// UploadRetention deletes uploaded JSON files older than the retention
// window.
type UploadRetention struct {
	Uploads *storage.Store
	MaxAge  time.Duration
	Logger  *slog.Logger
}

func (j *UploadRetention) Name() string { return "upload_retention" }

func (j *UploadRetention) Run(_ context.Context) error {
	removed, err := j.Uploads.Sweep(j.MaxAge)
	if err != nil {
		return err
	}
	if removed > 0 {
		j.Logger.Info("expired uploads removed", "count", removed)
	}
	return nil
}
