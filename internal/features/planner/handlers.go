package planner

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"studyflow.app/server/internal/httpapi"
)

// Handler serves the planner endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates the planner handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the planner endpoints on an authenticated
// router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/subjects", h.listSubjects)
	r.Post("/subjects", h.createSubject)
	r.Put("/subjects/{id}", h.updateSubject)
	r.Delete("/subjects/{id}", h.deleteSubject)

	r.Get("/tasks", h.listTasks)
	r.Post("/tasks", h.createTask)
	r.Put("/tasks/{id}", h.updateTask)
	r.Delete("/tasks/{id}", h.deleteTask)
}

type subjectRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (req *subjectRequest) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return "name is required"
	}
	if req.Color == "" {
		req.Color = "#6366f1"
	}
	return ""
}

// GET /api/subjects
func (h *Handler) listSubjects(w http.ResponseWriter, r *http.Request) {
	userID, err := httpapi.UserID(r)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}

	subjects, err := h.service.Subjects(r.Context(), userID)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}
	if subjects == nil {
		subjects = []Subject{}
	}
	httpapi.JSON(w, http.StatusOK, subjects)
}

// POST /api/subjects {"name": "...", "color": "#rrggbb"}
func (h *Handler) createSubject(w http.ResponseWriter, r *http.Request) {
	userID, err := httpapi.UserID(r)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}

	var req subjectRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		httpapi.Error(w, http.StatusBadRequest, msg)
		return
	}

	subject, err := h.service.CreateSubject(r.Context(), userID, req.Name, req.Color)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}
	httpapi.JSON(w, http.StatusCreated, subject)
}

// PUT /api/subjects/{id}
func (h *Handler) updateSubject(w http.ResponseWriter, r *http.Request) {
	userID, err := httpapi.UserID(r)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}
	subjectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid subject id")
		return
	}

	var req subjectRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		httpapi.Error(w, http.StatusBadRequest, msg)
		return
	}

	subject, err := h.service.UpdateSubject(r.Context(), userID, subjectID, req.Name, req.Color)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}
	httpapi.JSON(w, http.StatusOK, subject)
}

// DELETE /api/subjects/{id}
func (h *Handler) deleteSubject(w http.ResponseWriter, r *http.Request) {
	userID, err := httpapi.UserID(r)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}
	subjectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid subject id")
		return
	}

	if err := h.service.DeleteSubject(r.Context(), userID, subjectID); err != nil {
		httpapi.DomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type taskRequest struct {
	TaskInput
}

func (req *taskRequest) validate() string {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return "title is required"
	}
	if req.Priority == "" {
		req.Priority = PriorityMedium
	}
	if !ValidPriority(req.Priority) {
		return "priority must be low, medium or high"
	}
	return ""
}

// GET /api/tasks
func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	userID, err := httpapi.UserID(r)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}

	tasks, err := h.service.Tasks(r.Context(), userID)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}
	if tasks == nil {
		tasks = []Task{}
	}
	httpapi.JSON(w, http.StatusOK, tasks)
}

// POST /api/tasks {"title": "...", "subject_id": null, "priority": "medium", "due_date": null}
func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	userID, err := httpapi.UserID(r)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}

	var req taskRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		httpapi.Error(w, http.StatusBadRequest, msg)
		return
	}

	task, err := h.service.CreateTask(r.Context(), userID, req.TaskInput)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}
	httpapi.JSON(w, http.StatusCreated, task)
}

// PUT /api/tasks/{id}
func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	userID, err := httpapi.UserID(r)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}
	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid task id")
		return
	}

	var req taskRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		httpapi.Error(w, http.StatusBadRequest, msg)
		return
	}

	task, err := h.service.UpdateTask(r.Context(), userID, taskID, req.TaskInput)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}
	httpapi.JSON(w, http.StatusOK, task)
}

// DELETE /api/tasks/{id}
func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	userID, err := httpapi.UserID(r)
	if err != nil {
		httpapi.DomainError(w, err)
		return
	}
	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid task id")
		return
	}

	if err := h.service.DeleteTask(r.Context(), userID, taskID); err != nil {
		httpapi.DomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
