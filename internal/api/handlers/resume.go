package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alex/resume-builder/internal/api/middleware"
	"github.com/alex/resume-builder/internal/domain"
	"github.com/alex/resume-builder/internal/service"
)

type ResumeHandler struct {
	resumeService *service.ResumeService
	logger        *zap.Logger
}

func NewResumeHandler(resumeService *service.ResumeService, logger *zap.Logger) *ResumeHandler {
	return &ResumeHandler{resumeService: resumeService, logger: logger}
}

func (h *ResumeHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	resumes, err := h.resumeService.List(r.Context(), userID)
	if err != nil {
		h.logger.Error("list resumes failed", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, resumes)
}

func (h *ResumeHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Resume not found", http.StatusNotFound)
		return
	}

	resume, err := h.resumeService.Get(r.Context(), id, userID)
	if err != nil {
		h.writeResumeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resume)
}

func (h *ResumeHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req service.CreateResumeInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, "Title is required", http.StatusBadRequest)
		return
	}

	resume, err := h.resumeService.Create(r.Context(), userID, req)
	if err != nil {
		h.logger.Error("create resume failed", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, resume)
}

func (h *ResumeHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Resume not found", http.StatusNotFound)
		return
	}

	var req service.UpdateResumeInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resume, err := h.resumeService.Update(r.Context(), id, userID, req)
	if err != nil {
		h.writeResumeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resume)
}

func (h *ResumeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Resume not found", http.StatusNotFound)
		return
	}

	if err := h.resumeService.Delete(r.Context(), id, userID); err != nil {
		h.writeResumeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// writeResumeError surfaces a missing resume and someone else's resume
// identically, so callers cannot probe which resume ids exist.
func (h *ResumeHandler) writeResumeError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrResumeNotFound) || errors.Is(err, domain.ErrForbidden) {
		http.Error(w, "Resume not found", http.StatusNotFound)
		return
	}
	h.logger.Error("resume operation failed", zap.Error(err))
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}
