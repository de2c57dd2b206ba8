package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/mooncakehq/mooncake/internal/app"
	"github.com/mooncakehq/mooncake/internal/models"
)

type AssignmentHandler struct {
	service *app.Service
}

func NewAssignmentHandler(service *app.Service) *AssignmentHandler {
	return &AssignmentHandler{
		service: service,
	}
}

// teacherGate runs the shared checks for teacher-only mutations.
func (h *AssignmentHandler) teacherGate(w http.ResponseWriter, r *http.Request) bool {
	if !h.service.ValidateHeaders(r.Header) {
		http.Error(w, "these are not the droids you are looking for", http.StatusForbidden)
		return false
	}

	user := r.Header.Get(h.service.Config.API.UserHeader)
	if err := h.service.ValidateTeacherAuth(r, user); err != nil {
		logger.Error.Printf("Auth failed: %v", err)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

func (h *AssignmentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if !h.service.ValidateHeaders(r.Header) {
		http.Error(w, "these are not the droids you are looking for", http.StatusNotFound)
		return
	}

	writeJSON(w, map[string]interface{}{
		"assignments": h.service.Store.Assignments(),
		"active_id":   h.service.Store.ActiveAssignmentID(),
	})
}

func (h *AssignmentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if !h.teacherGate(w, r) {
		return
	}

	var a models.Assignment
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := a.Validate(); err != nil {
		logger.Debug.Printf("Rejected assignment payload: %v", err)
		http.Error(w, "Invalid assignment", http.StatusBadRequest)
		return
	}

	created := h.service.Store.CreateAssignment(a)

	writeJSON(w, map[string]interface{}{
		"assignment": created,
	})
}

func (h *AssignmentHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if !h.teacherGate(w, r) {
		return
	}

	var a models.Assignment
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	a.ID = r.PathValue("id")
	if err := a.Validate(); err != nil {
		logger.Debug.Printf("Rejected assignment payload: %v", err)
		http.Error(w, "Invalid assignment", http.StatusBadRequest)
		return
	}

	// a miss is a silent no-op, the collection stays unchanged
	h.service.Store.UpdateAssignment(a)

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *AssignmentHandler) HandleDuplicate(w http.ResponseWriter, r *http.Request) {
	if !h.teacherGate(w, r) {
		return
	}

	h.service.Store.DuplicateAssignment(r.PathValue("id"))

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *AssignmentHandler) HandleRequestDelete(w http.ResponseWriter, r *http.Request) {
	if !h.teacherGate(w, r) {
		return
	}

	if !h.service.Store.RequestDeleteAssignment(r.PathValue("id")) {
		http.Error(w, "Assignment not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *AssignmentHandler) HandleConfirmDelete(w http.ResponseWriter, r *http.Request) {
	if !h.teacherGate(w, r) {
		return
	}

	h.service.Store.ConfirmDeleteAssignment()

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *AssignmentHandler) HandleCancelDelete(w http.ResponseWriter, r *http.Request) {
	if !h.teacherGate(w, r) {
		return
	}

	h.service.Store.CancelDeleteAssignment()

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *AssignmentHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	if !h.service.ValidateHeaders(r.Header) {
		http.Error(w, "these are not the droids you are looking for", http.StatusForbidden)
		return
	}

	h.service.Store.SelectAssignment(r.PathValue("id"))

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *AssignmentHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if !h.service.ValidateHeaders(r.Header) {
		http.Error(w, "these are not the droids you are looking for", http.StatusNotFound)
		return
	}

	stats, err := h.service.Dashboard(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Assignment not found", http.StatusNotFound)
		return
	}

	writeJSON(w, map[string]interface{}{
		"stats": stats,
	})
}
