package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/todohive/todo-api/internal/model"
)

// TaskRepository определяет интерфейс для работы с задачами.
// Каждый метод принимает ownerID и обязан фильтровать по нему:
// чужая задача неотличима от несуществующей.
type TaskRepository interface {
	Create(ctx context.Context, t model.Task) (model.Task, error)
	Get(ctx context.Context, ownerID string, id uuid.UUID) (model.Task, error)
	List(ctx context.Context, ownerID string) ([]model.Task, error)
	UpdateTitle(ctx context.Context, ownerID string, id uuid.UUID, title string) (model.Task, error)
	ToggleCompleted(ctx context.Context, ownerID string, id uuid.UUID) (model.Task, error)
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
	SaveIdempotencyKey(ctx context.Context, ownerID, key string, resourceID uuid.UUID) error
	GetIdempotencyKey(ctx context.Context, ownerID, key string) (uuid.UUID, error)
}
