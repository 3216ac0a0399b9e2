package repository

import (
	"context"
	"time"
)

// AccessLogStore persists and prunes access-log records.
type AccessLogStore interface {
	Insert(ctx context.Context, log *AccessLog) error
	BatchInsert(ctx context.Context, logs []*AccessLog) error
	Count(ctx context.Context) (int64, error)
	// DeleteBefore removes records created before cutoff and returns how
	// many were deleted.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
