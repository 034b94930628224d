package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/todohive/todo-api/internal/cache"
	"github.com/todohive/todo-api/internal/model"
	"github.com/todohive/todo-api/internal/repo"
)

const maxTitleLen = 255

// ValidationError - нарушение правил входных данных с привязкой к полю.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// TaskService выполняет операции над задачами от имени конкретного
// пользователя. ownerID всегда приходит из проверенного токена -
// сервис не принимает идентичность ни из каких других источников.
type TaskService struct {
	repo  repo.TaskRepository
	cache *cache.TaskCache // nil = кэш выключен
}

func NewTaskService(repo repo.TaskRepository, cache *cache.TaskCache) *TaskService {
	return &TaskService{repo: repo, cache: cache}
}

func (s *TaskService) Create(ctx context.Context, ownerID, title, idempKey string) (model.Task, error) {
	if err := validateTitle(title); err != nil {
		return model.Task{}, err
	}

	// Идемпотентность: повторный запрос с тем же ключом возвращает
	// ранее созданную задачу. Ключи разделены по владельцам.
	if idempKey != "" {
		if existingID, err := s.repo.GetIdempotencyKey(ctx, ownerID, idempKey); err == nil {
			return s.repo.Get(ctx, ownerID, existingID)
		}
	}

	task, err := s.repo.Create(ctx, model.Task{OwnerID: ownerID, Title: title})
	if err != nil {
		return task, err
	}

	if idempKey != "" {
		s.repo.SaveIdempotencyKey(ctx, ownerID, idempKey, task.ID)
	}

	s.cache.InvalidateList(ctx, ownerID)
	return task, nil
}

func (s *TaskService) Get(ctx context.Context, ownerID string, id uuid.UUID) (model.Task, error) {
	return s.repo.Get(ctx, ownerID, id)
}

func (s *TaskService) List(ctx context.Context, ownerID string) ([]model.Task, error) {
	if tasks, ok := s.cache.GetList(ctx, ownerID); ok {
		return tasks, nil
	}

	tasks, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	s.cache.SetList(ctx, ownerID, tasks)
	return tasks, nil
}

func (s *TaskService) UpdateTitle(ctx context.Context, ownerID string, id uuid.UUID, title *string) (model.Task, error) {
	if title == nil {
		return model.Task{}, &ValidationError{Field: "title", Message: "no update data provided"}
	}
	if err := validateTitle(*title); err != nil {
		return model.Task{}, err
	}

	task, err := s.repo.UpdateTitle(ctx, ownerID, id, *title)
	if err != nil {
		return task, err
	}

	s.cache.InvalidateList(ctx, ownerID)
	return task, nil
}

func (s *TaskService) ToggleCompleted(ctx context.Context, ownerID string, id uuid.UUID) (model.Task, error) {
	task, err := s.repo.ToggleCompleted(ctx, ownerID, id)
	if err != nil {
		return task, err
	}

	s.cache.InvalidateList(ctx, ownerID)
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}

	s.cache.InvalidateList(ctx, ownerID)
	return nil
}

// validateTitle: 1-255 символов (в рунах, не байтах), не только пробелы.
func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Message: "title must not be empty"}
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return &ValidationError{Field: "title", Message: fmt.Sprintf("title must be at most %d characters", maxTitleLen)}
	}
	return nil
}
