// Package editor хранит черновик резюме, который многошаговый редактор
// собирает из отдельных форм, и отправляет его на сохранение.
package editor

import (
	"context"
	"fmt"
	"sync"

	"cvbuilder_backend/internal/services/dto"
	"cvbuilder_backend/internal/validator"
)

// Saver - шлюз сохранения (ResumeService.Save, привязанный к БД).
type Saver interface {
	Save(ctx context.Context, userID string, values dto.ResumeValues) (*dto.ResumeResponse, error)
}

type SaverFunc func(ctx context.Context, userID string, values dto.ResumeValues) (*dto.ResumeResponse, error)

func (f SaverFunc) Save(ctx context.Context, userID string, values dto.ResumeValues) (*dto.ResumeResponse, error) {
	return f(ctx, userID, values)
}

type Option func(*Editor)

// WithInitialStep задает стартовый шаг; неизвестный шаг заменяется первым.
func WithInitialStep(step Step) Option {
	return func(e *Editor) {
		if step.IsValid() {
			e.current = step
		}
	}
}

func WithValidator(v *validator.Validator) Option {
	return func(e *Editor) { e.validator = v }
}

// Editor - сессия редактирования одного резюме. Пишет одна горутина
// (цикл интерфейса), читать Draft/Current можно конкурентно.
type Editor struct {
	mu        sync.RWMutex
	draft     dto.ResumeValues
	current   Step
	saver     Saver
	validator *validator.Validator
}

func New(draft dto.ResumeValues, saver Saver, opts ...Option) *Editor {
	e := &Editor{
		draft:   draft.Clone(),
		current: steps[0],
		saver:   saver,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.validator == nil {
		e.validator = validator.New()
	}
	return e
}

func (e *Editor) Current() Step {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current
}

// Next переходит на следующий шаг; на последнем шаге ничего не делает.
func (e *Editor) Next() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.current.Index()
	if i >= len(steps)-1 {
		return false
	}
	e.current = steps[i+1]
	return true
}

func (e *Editor) Prev() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.current.Index()
	if i <= 0 {
		return false
	}
	e.current = steps[i-1]
	return true
}

// GoTo - переход по хлебным крошкам.
func (e *Editor) GoTo(step Step) error {
	if !step.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownStep, step)
	}
	e.mu.Lock()
	e.current = step
	e.mu.Unlock()
	return nil
}

// Apply заменяет срез черновика, принадлежащий событию.
func (e *Editor) Apply(evt Event) {
	if evt == nil {
		return
	}
	e.mu.Lock()
	evt.apply(&e.draft)
	e.mu.Unlock()
}

// Draft возвращает глубокую копию черновика (вход для предпросмотра).
func (e *Editor) Draft() dto.ResumeValues {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.draft.Clone()
}

// Commit проверяет черновик и сохраняет его. После успешного сохранения
// черновик получает id и URL фото, так что следующий Commit обновит ту же запись.
// При ошибке валидации возвращается *validator.ValidationError, Saver не вызывается.
func (e *Editor) Commit(ctx context.Context, userID string) (*dto.ResumeResponse, error) {
	draft := e.Draft()

	normalized, err := e.validator.ValidateResume(draft)
	if err != nil {
		return nil, err
	}

	saved, err := e.saver.Save(ctx, userID, normalized)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.draft.ID = saved.ID
	e.draft.Photo = saved.Photo
	e.mu.Unlock()
	return saved, nil
}
