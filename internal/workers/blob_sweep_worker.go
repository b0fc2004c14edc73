package workers

import (
	"context"
	"time"

	"cvbuilder_backend/internal/logger"
	"cvbuilder_backend/internal/services"

	"gorm.io/gorm"
)

// BlobSweepWorker периодически удаляет из хранилища изображения,
// на которые не ссылается ни одна строка.
type BlobSweepWorker struct {
	db       *gorm.DB
	cleanup  services.CleanupService
	interval time.Duration
}

func NewBlobSweepWorker(db *gorm.DB, cleanup services.CleanupService, interval time.Duration) *BlobSweepWorker {
	return &BlobSweepWorker{db: db, cleanup: cleanup, interval: interval}
}

// Start запускает фоновую очистку. interval <= 0 - воркер выключен.
func (w *BlobSweepWorker) Start(ctx context.Context) {
	if w.interval <= 0 {
		return
	}
	go w.run(ctx)
}

func (w *BlobSweepWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logger.Info("Blob sweep worker started", "interval", w.interval.String())
	for {
		select {
		case <-ctx.Done():
			logger.Info("Blob sweep worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce выполняет один проход; ошибки только логируются.
func (w *BlobSweepWorker) RunOnce(ctx context.Context) {
	result, err := w.cleanup.CleanupBlobs(ctx, w.db.WithContext(ctx))
	if err != nil {
		logger.CtxWithError(ctx, "Scheduled blob sweep failed", err)
		return
	}
	if result.UnusedBlobs > 0 {
		logger.CtxInfo(ctx, "Scheduled blob sweep", "deleted", result.DeletedSuccess, "failed", result.DeletedFailed)
	}
}
