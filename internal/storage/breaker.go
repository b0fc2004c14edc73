package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"cvbuilder_backend/internal/logger"

	"github.com/sony/gobreaker"
)

// BreakerSettings - параметры размыкателя для удаленного хранилища
type BreakerSettings struct {
	MaxRequests         uint32        // запросов в half-open
	Interval            time.Duration // сброс счетчиков в closed
	Timeout             time.Duration // сколько держать open
	ConsecutiveFailures uint32        // порог подряд идущих ошибок
}

func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:         3,
		Interval:            60 * time.Second,
		Timeout:             30 * time.Second,
		ConsecutiveFailures: 5,
	}
}

// breakerStorage оборачивает сетевые операции Storage в circuit breaker:
// при недоступном S3/R2 запросы быстро получают ошибку вместо таймаутов.
// Построение URL не обращается к сети и идет напрямую.
type breakerStorage struct {
	inner Storage
	cb    *gobreaker.CircuitBreaker
}

func NewBreakerStorage(inner Storage, name string, settings BreakerSettings) Storage {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.ConsecutiveFailures
		},
		// Отсутствующий объект и отмена запроса клиентом - не сбой хранилища
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, os.ErrNotExist) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("storage circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
	return &breakerStorage{inner: inner, cb: cb}
}

func (s *breakerStorage) run(fn func() error) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	return err
}

func (s *breakerStorage) Save(ctx context.Context, path string, reader io.Reader, contentType string) error {
	return s.run(func() error { return s.inner.Save(ctx, path, reader, contentType) })
}

func (s *breakerStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	var rc io.ReadCloser
	err := s.run(func() error {
		var err error
		rc, err = s.inner.Get(ctx, path)
		return err
	})
	return rc, err
}

func (s *breakerStorage) Delete(ctx context.Context, path string) error {
	return s.run(func() error { return s.inner.Delete(ctx, path) })
}

func (s *breakerStorage) Exists(ctx context.Context, path string) (bool, error) {
	var ok bool
	err := s.run(func() error {
		var err error
		ok, err = s.inner.Exists(ctx, path)
		return err
	})
	return ok, err
}

func (s *breakerStorage) GetURL(ctx context.Context, path string) (string, error) {
	return s.inner.GetURL(ctx, path)
}

func (s *breakerStorage) GetSignedURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.inner.GetSignedURL(ctx, path, expiry)
}

func (s *breakerStorage) GetSize(ctx context.Context, path string) (int64, error) {
	var size int64
	err := s.run(func() error {
		var err error
		size, err = s.inner.GetSize(ctx, path)
		return err
	})
	return size, err
}

func (s *breakerStorage) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	var objects []ObjectInfo
	err := s.run(func() error {
		var err error
		objects, err = s.inner.List(ctx, prefix)
		return err
	})
	return objects, err
}

func (s *breakerStorage) KeyFromURL(url string) (string, bool) {
	return s.inner.KeyFromURL(url)
}
