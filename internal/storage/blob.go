package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"cvbuilder_backend/internal/logger"
	"cvbuilder_backend/internal/metrics"

	"github.com/google/uuid"
)

// Папки для загружаемых изображений
const (
	FolderAvatars        = "images/avatars"
	FolderResumePhotos   = "images/resume_photos"
	FolderBlogThumbnails = "images/blog-thumbnails"
)

// imageExtensions - расширения, которые учитывает очистка.
var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// File - файл для загрузки
type File struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

// UploadResult - результат загрузки
type UploadResult struct {
	URL      string `json:"url"`
	Path     string `json:"path"`
	Filename string `json:"filename"`
}

// SweepResult - итог очистки неиспользуемых объектов
type SweepResult struct {
	TotalBlobs     int `json:"totalBlobs"`
	UsedBlobs      int `json:"usedBlobs"`
	UnusedBlobs    int `json:"unusedBlobs"`
	DeletedSuccess int `json:"deletedSuccess"`
	DeletedFailed  int `json:"deletedFailed"`
}

// BlobGateway - загрузка и освобождение пользовательских файлов.
// Удаление никогда не возвращает ошибку: сбой логируется, результат - false.
type BlobGateway interface {
	// Upload сохраняет файл в folder под уникальным именем.
	Upload(ctx context.Context, folder string, file File) (*UploadResult, error)

	// Delete удаляет объект по публичному URL. Пустые и чужие URL
	// не трогаются и дают false.
	Delete(ctx context.Context, url string) bool

	// DeleteWithRetry делает до attempts попыток; после неудачной
	// попытки N ждет N * RetryUnit.
	DeleteWithRetry(ctx context.Context, url string, attempts int) bool

	// Sweep удаляет изображения, URL которых нет в referenced.
	// Ключи с префиксами из skip не учитываются и не удаляются.
	Sweep(ctx context.Context, referenced []string, skip ...string) (*SweepResult, error)

	// Owns сообщает, выдан ли url этим хранилищем.
	Owns(url string) bool
}

// GatewayOptions - настройки шлюза
type GatewayOptions struct {
	RetryUnit time.Duration
	// Sleep заменяется в тестах; по умолчанию ждет с учетом ctx.
	Sleep func(ctx context.Context, d time.Duration) error
	Now   func() time.Time
}

type blobGateway struct {
	store     Storage
	retryUnit time.Duration
	sleep     func(ctx context.Context, d time.Duration) error
	now       func() time.Time
}

func NewBlobGateway(store Storage, opts GatewayOptions) BlobGateway {
	if opts.RetryUnit <= 0 {
		opts.RetryUnit = time.Second
	}
	if opts.Sleep == nil {
		opts.Sleep = sleepContext
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &blobGateway{
		store:     store,
		retryUnit: opts.RetryUnit,
		sleep:     opts.Sleep,
		now:       opts.Now,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ============================================
// UPLOAD
// ============================================

var unsafeNameChars = regexp.MustCompile(`[^a-z0-9_-]+`)

// UniqueFilename строит имя вида "<base>-<unixmillis>-<uuid8><ext>".
func UniqueFilename(original string, now time.Time) string {
	ext := strings.ToLower(path.Ext(original))
	base := strings.ToLower(strings.TrimSuffix(path.Base(original), path.Ext(original)))
	base = strings.Trim(unsafeNameChars.ReplaceAllString(base, "-"), "-")
	if base == "" {
		base = "file"
	}
	return fmt.Sprintf("%s-%d-%s%s", base, now.UnixMilli(), uuid.NewString()[:8], ext)
}

func (g *blobGateway) Upload(ctx context.Context, folder string, file File) (*UploadResult, error) {
	start := time.Now()
	filename := UniqueFilename(file.Name, g.now())
	key := path.Join(strings.Trim(folder, "/"), filename)

	err := g.store.Save(ctx, key, file.Reader, file.ContentType)
	logger.BlobLog("upload", key, time.Since(start), err)
	if err != nil {
		metrics.BlobOperation("upload", metrics.OutcomeFailure)
		return nil, fmt.Errorf("failed to upload %s: %w", key, err)
	}

	url, err := g.store.GetURL(ctx, key)
	if err != nil {
		metrics.BlobOperation("upload", metrics.OutcomeFailure)
		return nil, fmt.Errorf("failed to build url for %s: %w", key, err)
	}

	metrics.BlobOperation("upload", metrics.OutcomeSuccess)
	return &UploadResult{URL: url, Path: key, Filename: filename}, nil
}

// ============================================
// DELETE
// ============================================

func (g *blobGateway) Owns(url string) bool {
	_, ok := g.store.KeyFromURL(url)
	return ok
}

func (g *blobGateway) Delete(ctx context.Context, url string) bool {
	if url == "" {
		return false
	}
	key, ok := g.store.KeyFromURL(url)
	if !ok {
		logger.CtxDebug(ctx, "skipping delete of foreign url", "url", url)
		metrics.BlobOperation("delete", metrics.OutcomeSkipped)
		return false
	}

	start := time.Now()
	err := g.store.Delete(ctx, key)
	logger.BlobLog("delete", key, time.Since(start), err)
	if err != nil {
		metrics.BlobOperation("delete", metrics.OutcomeFailure)
		return false
	}

	metrics.BlobOperation("delete", metrics.OutcomeSuccess)
	return true
}

func (g *blobGateway) DeleteWithRetry(ctx context.Context, url string, attempts int) bool {
	if attempts < 1 {
		attempts = 1
	}
	// Чужой или пустой URL повторять бессмысленно.
	if url == "" || !g.Owns(url) {
		return false
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		if g.Delete(ctx, url) {
			if attempt > 1 {
				logger.CtxInfo(ctx, "blob deleted after retry", "url", url, "attempt", attempt)
			}
			return true
		}
		if attempt == attempts {
			break
		}

		delay := time.Duration(attempt) * g.retryUnit
		logger.CtxWarn(ctx, "blob delete failed, retrying", "url", url, "attempt", attempt, "delay", delay)
		if err := g.sleep(ctx, delay); err != nil {
			logger.CtxWarn(ctx, "blob delete retry aborted", "url", url, "error", err)
			return false
		}
	}

	logger.CtxError(ctx, "blob delete failed after all attempts", "url", url, "attempts", attempts)
	return false
}

// ============================================
// SWEEP
// ============================================

func hasAnyPrefix(key string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(key, strings.TrimSuffix(p, "/")+"/") {
			return true
		}
	}
	return false
}

func (g *blobGateway) Sweep(ctx context.Context, referenced []string, skip ...string) (*SweepResult, error) {
	objects, err := g.store.List(ctx, "")
	if err != nil {
		return nil, err
	}

	used := make(map[string]bool, len(referenced))
	for _, url := range referenced {
		if key, ok := g.store.KeyFromURL(url); ok {
			used[key] = true
		}
	}

	result := &SweepResult{}
	var unused []string
	for _, obj := range objects {
		if !imageExtensions[strings.ToLower(path.Ext(obj.Path))] || hasAnyPrefix(obj.Path, skip) {
			continue
		}
		result.TotalBlobs++
		if used[obj.Path] {
			result.UsedBlobs++
			continue
		}
		unused = append(unused, obj.Path)
	}
	result.UnusedBlobs = len(unused)

	for _, key := range unused {
		start := time.Now()
		err := g.store.Delete(ctx, key)
		logger.BlobLog("sweep_delete", key, time.Since(start), err)
		if err != nil {
			result.DeletedFailed++
			continue
		}
		result.DeletedSuccess++
	}

	metrics.SweepResult(result.DeletedSuccess, result.DeletedFailed)
	logger.CtxInfo(ctx, "blob sweep completed",
		"total", result.TotalBlobs,
		"used", result.UsedBlobs,
		"unused", result.UnusedBlobs,
		"deleted", result.DeletedSuccess,
		"failed", result.DeletedFailed,
	)
	return result, nil
}
