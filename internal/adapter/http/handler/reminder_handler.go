package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/goexpense/internal/adapter/http/dto"
	"github.com/iho/goexpense/internal/usecase"
)

// ReminderService defines the behavior needed by ReminderHandler.
type ReminderService interface {
	CreateReminder(ctx context.Context, input usecase.CreateReminderInput) (*usecase.ReminderStatus, error)
	ListReminders(ctx context.Context, userID string) ([]*usecase.ReminderStatus, error)
	DeleteReminder(ctx context.Context, userID, id string) error
}

// ReminderHandler handles reminder requests.
type ReminderHandler struct {
	reminderUC ReminderService
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(reminderUC ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderUC: reminderUC}
}

// Create creates a reminder.
func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateReminderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	status, err := h.reminderUC.CreateReminder(r.Context(), req.ToUseCaseInput(userID(r)))
	if err != nil {
		writeDomainError(w, "failed to create reminder", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ReminderFromUseCase(status))
}

// List lists reminders by due date.
func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.reminderUC.ListReminders(r.Context(), userID(r))
	if err != nil {
		writeDomainError(w, "failed to list reminders", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RemindersFromUseCase(statuses))
}

// Delete removes a reminder.
func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.reminderUC.DeleteReminder(r.Context(), userID(r), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, "failed to delete reminder", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
