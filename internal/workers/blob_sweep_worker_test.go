package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"cvbuilder_backend/database"
	"cvbuilder_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCleanup struct {
	calls atomic.Int32
	err   error
}

func (f *fakeCleanup) CleanupBlobs(ctx context.Context, db *gorm.DB) (*dto.CleanupResponse, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &dto.CleanupResponse{Success: true, UnusedBlobs: 1, DeletedSuccess: 1}, nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(context.Background(), database.Config{
		Driver: database.DriverSQLite,
		DSN:    "file::memory:",
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestBlobSweepWorker_DisabledWithZeroInterval(t *testing.T) {
	cleanup := &fakeCleanup{}
	w := NewBlobSweepWorker(newTestDB(t), cleanup, 0)

	w.Start(context.Background())
	time.Sleep(20 * time.Millisecond)

	assert.Zero(t, cleanup.calls.Load())
}

func TestBlobSweepWorker_RunsUntilCancelled(t *testing.T) {
	cleanup := &fakeCleanup{}
	w := NewBlobSweepWorker(newTestDB(t), cleanup, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	require.Eventually(t, func() bool { return cleanup.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	time.Sleep(20 * time.Millisecond)
	after := cleanup.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, cleanup.calls.Load())
}

func TestBlobSweepWorker_RunOnceSwallowsErrors(t *testing.T) {
	cleanup := &fakeCleanup{err: errors.New("storage down")}
	w := NewBlobSweepWorker(newTestDB(t), cleanup, time.Hour)

	assert.NotPanics(t, func() { w.RunOnce(context.Background()) })
	assert.Equal(t, int32(1), cleanup.calls.Load())
}
