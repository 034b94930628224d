package model

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     string    `json:"-"` // Владелец берется только из токена, наружу не отдаем
	Title       string    `json:"title"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateTaskRequest struct {
	Title string `json:"title"`
}

// UpdateTaskRequest - частичное обновление, nil значит поле не передано
type UpdateTaskRequest struct {
	Title *string `json:"title"`
}
