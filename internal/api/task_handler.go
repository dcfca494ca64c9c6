package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// TaskHandler serves the principal's tasks.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListTasks handles GET /tasks. The optional status and category_id query
// parameters narrow the result.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromRequest(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	filter := store.TaskFilter{Status: domain.TaskStatus(query.Get("status"))}
	if raw := query.Get("category_id"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			HandleAPIError(w, r,
				domain.NewValidationError("category_id", "has invalid format", domain.ErrInvalidID), "")
			return
		}
		filter.CategoryID = &categoryID
	}

	tasks, err := h.taskService.ListTasks(r.Context(), principal.ID, filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	resp := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		resp = append(resp, taskToResponse(task))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// CreateTask handles POST /tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromRequest(w, r)
	if !ok {
		return
	}

	var req TaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), principal.ID, service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.TaskPriority(req.Priority),
		CategoryID:  req.CategoryID,
		DueDate:     req.DueDate,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// GetTask handles GET /tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	principal, taskID, ok := handlePrincipalAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), principal.ID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UpdateTask handles PUT /tasks/{id}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	principal, taskID, ok := handlePrincipalAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), principal.ID, taskID, service.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Status:      optionalString[domain.TaskStatus](req.Status),
		Priority:    optionalString[domain.TaskPriority](req.Priority),
		CategoryID:  req.CategoryID,
		DueDate:     req.DueDate,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	principal, taskID, ok := handlePrincipalAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), principal.ID, taskID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
