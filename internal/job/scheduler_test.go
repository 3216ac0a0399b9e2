package job

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowkeyarhan/Socket-P-assignment/internal/storage"
)

type noopJob struct{}

func (noopJob) Name() string              { return "noop" }
func (noopJob) Run(context.Context) error { return nil }

func TestScheduler_Register(t *testing.T) {
	s := NewScheduler(slog.New(slog.DiscardHandler))

	_, err := s.Register("@hourly", noopJob{})
	assert.NoError(t, err)

	_, err = s.Register("@every 30s", noopJob{})
	assert.NoError(t, err)

	_, err = s.Register("", noopJob{})
	assert.Error(t, err)

	_, err = s.Register("@hourly", nil)
	assert.Error(t, err)

	_, err = s.Register("not a cron spec", noopJob{})
	assert.Error(t, err)
}

func TestScheduler_StartStopIdempotent(t *testing.T) {
	s := NewScheduler(slog.New(slog.DiscardHandler))
	s.Start()
	s.Start()

	ctx := s.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("stop did not complete")
	}
	assert.NotNil(t, s.Stop())
}

func TestUploadRetention_Run(t *testing.T) {
	uploads, err := storage.NewStore(t.TempDir())
	require.NoError(t, err)

	old := filepath.Join(uploads.Dir(), "upload_20200101_000000_abcd.json")
	require.NoError(t, os.WriteFile(old, []byte("{}"), 0o644))
	stale := time.Now().Add(-10 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(old, stale, stale))

	j := &UploadRetention{Uploads: uploads, MaxAge: 7 * 24 * time.Hour, Logger: slog.New(slog.DiscardHandler)}
	require.NoError(t, j.Run(context.Background()))
	assert.NoFileExists(t, old)
}
