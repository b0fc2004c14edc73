package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"sync"
	"testing"

	"cvbuilder_backend/internal/models"
	"cvbuilder_backend/internal/services/dto"
	"cvbuilder_backend/internal/storage"
	"cvbuilder_backend/pkg/apperrors"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const fakeBlobBase = "https://blob.test/"

// newTestDB - отдельная in-memory SQLite база на каждый тест.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Resume{},
		&models.WorkExperience{},
		&models.Education{},
		&models.Project{},
		&models.Hobby{},
	))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()
	u := &models.User{Email: email, PasswordHash: "x", Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

// fakeBlobs записывает все вызовы шлюза.
type fakeBlobs struct {
	mu          sync.Mutex
	failUpload  bool
	deleteOK    bool
	uploads     []string
	deletes     []string
	retries     []string
	swept       []string
	skipped     []string
	sweepResult *storage.SweepResult
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{deleteOK: true}
}

func (f *fakeBlobs) Upload(ctx context.Context, folder string, file storage.File) (*storage.UploadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpload {
		return nil, errors.New("bucket unavailable")
	}
	if _, err := io.Copy(io.Discard, file.Reader); err != nil {
		return nil, err
	}
	path := fmt.Sprintf("%s/%d-%s", folder, len(f.uploads)+1, file.Name)
	f.uploads = append(f.uploads, path)
	return &storage.UploadResult{URL: fakeBlobBase + path, Path: path, Filename: file.Name}, nil
}

func (f *fakeBlobs) Delete(ctx context.Context, url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, url)
	return f.deleteOK
}

func (f *fakeBlobs) DeleteWithRetry(ctx context.Context, url string, attempts int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.retries = append(f.retries, url)
	return f.deleteOK
}

func (f *fakeBlobs) Sweep(ctx context.Context, referenced []string, skip ...string) (*storage.SweepResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.swept = append([]string(nil), referenced...)
	f.skipped = append([]string(nil), skip...)
	if f.sweepResult == nil {
		return &storage.SweepResult{}, nil
	}
	return f.sweepResult, nil
}

func (f *fakeBlobs) Owns(url string) bool {
	return strings.HasPrefix(url, fakeBlobBase)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func pendingPhoto(t *testing.T) dto.Photo {
	return dto.PhotoFromFile(&dto.PendingFile{
		Filename:    "me.png",
		ContentType: "image/png",
		Data:        pngBytes(t),
	})
}

func requireAppCode(t *testing.T, err error, code apperrors.ErrorCode) *apperrors.AppError {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code)
	return appErr
}
