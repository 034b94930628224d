package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/todohive/todo-api/internal/auth"
	"github.com/todohive/todo-api/internal/model"
	"github.com/todohive/todo-api/internal/repo"
	"github.com/todohive/todo-api/internal/service"
	"github.com/todohive/todo-api/pkg/respond"
)

type TaskHandler struct {
	service *service.TaskService
	logger  *zap.Logger
}

func NewTaskHandler(srv *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service: srv,
		logger:  logger,
	}
}

// Routes монтирует обработчики задач. Идентичность пользователя к этому
// моменту уже положена в контекст auth.Middleware - в путях и теле
// запроса никакого user_id нет и быть не может.
func (h *TaskHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Patch("/{id}/complete", h.ToggleComplete)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.Identity(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, respond.KindUnauthenticated, "invalid or expired credentials")
		return
	}

	tasks, err := h.service.List(r.Context(), ownerID)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, map[string][]model.Task{"tasks": tasks})
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.Identity(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, respond.KindUnauthenticated, "invalid or expired credentials")
		return
	}

	if r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, respond.KindValidation, "empty request body")
		return
	}

	var req model.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, respond.KindValidation, "invalid json")
		return
	}

	idempKey := r.Header.Get("Idempotency-Key")
	task, err := h.service.Create(r.Context(), ownerID, req.Title, idempKey)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/tasks/%s", task.ID))
	respond.JSON(w, r, http.StatusCreated, task)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.Identity(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, respond.KindUnauthenticated, "invalid or expired credentials")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil { // Кривой id неотличим от несуществующего
		respond.Error(w, r, http.StatusNotFound, respond.KindNotFound, "task not found")
		return
	}

	task, err := h.service.Get(r.Context(), ownerID, id)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.Identity(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, respond.KindUnauthenticated, "invalid or expired credentials")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, http.StatusNotFound, respond.KindNotFound, "task not found")
		return
	}

	var req model.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, respond.KindValidation, "invalid json")
		return
	}

	task, err := h.service.UpdateTitle(r.Context(), ownerID, id, req.Title)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.Identity(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, respond.KindUnauthenticated, "invalid or expired credentials")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, http.StatusNotFound, respond.KindNotFound, "task not found")
		return
	}

	if err := h.service.Delete(r.Context(), ownerID, id); err != nil {
		h.handleErrors(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) ToggleComplete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.Identity(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, respond.KindUnauthenticated, "invalid or expired credentials")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, http.StatusNotFound, respond.KindNotFound, "task not found")
		return
	}

	task, err := h.service.ToggleCompleted(r.Context(), ownerID, id)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.Is(err, repo.ErrorNotFound):
		respond.Error(w, r, http.StatusNotFound, respond.KindNotFound, "task not found")
	case errors.As(err, &vErr):
		respond.FieldError(w, r, http.StatusBadRequest, respond.KindValidation, vErr.Message, vErr.Field)
	default:
		h.logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, respond.KindInternal, "internal error")
	}
}
