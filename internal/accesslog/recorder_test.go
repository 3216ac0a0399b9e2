package accesslog

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowkeyarhan/Socket-P-assignment/internal/repository"
)

type memStore struct {
	mu   sync.Mutex
	logs []*repository.AccessLog
}

func (m *memStore) Insert(_ context.Context, log *repository.AccessLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *memStore) BatchInsert(_ context.Context, logs []*repository.AccessLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, logs...)
	return nil
}

func (m *memStore) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.logs)), nil
}

func (m *memStore) DeleteBefore(context.Context, time.Time) (int64, error) { return 0, nil }

func (m *memStore) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.logs)
}

func TestRecorder_FlushesOnClose(t *testing.T) {
	store := &memStore{}
	r := NewRecorder(store, slog.New(slog.DiscardHandler))
	require.NotNil(t, r)

	for i := 0; i < 5; i++ {
		r.Record(&repository.AccessLog{Method: "GET", Path: "/", Status: 200})
	}
	r.Close()
	assert.Equal(t, 5, store.len())
}

func TestRecorder_PeriodicFlush(t *testing.T) {
	store := &memStore{}
	r := NewRecorder(store, slog.New(slog.DiscardHandler))
	defer r.Close()

	r.Record(&repository.AccessLog{Method: "GET", Path: "/", Status: 200})
	assert.Eventually(t, func() bool { return store.len() == 1 }, 3*time.Second, 50*time.Millisecond)
}

func TestRecorder_NilStoreYieldsNilRecorder(t *testing.T) {
	assert.Nil(t, NewRecorder(nil, nil))
}

func TestRecorder_NilIsInert(t *testing.T) {
	var r *Recorder
	r.Record(&repository.AccessLog{})
	r.Close()
}
