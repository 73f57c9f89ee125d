package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/avibn/lanten-sub001/internal/dtos"
	"github.com/avibn/lanten-sub001/internal/services"
	"github.com/avibn/lanten-sub001/internal/utils"
)

type ReminderController struct {
	reminderService *services.ReminderService
	validate        *validator.Validate
}

func NewReminderController(reminderService *services.ReminderService) *ReminderController {
	return &ReminderController{
		reminderService: reminderService,
		validate:        newValidator(),
	}
}

// POST /payments/{paymentId}/reminders
func (c *ReminderController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	paymentID, ok := pathUUID(w, r, "paymentId")
	if !ok {
		return
	}

	var req dtos.ReminderRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}

	reminder, err := c.reminderService.Create(r.Context(), user.ID, paymentID, req.DaysBefore.Int())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, reminder)
}

// GET /payments/{paymentId}/reminders
func (c *ReminderController) ListHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	paymentID, ok := pathUUID(w, r, "paymentId")
	if !ok {
		return
	}

	reminders, err := c.reminderService.List(r.Context(), user.ID, paymentID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, reminders)
}

// PUT /reminders/{reminderId}
func (c *ReminderController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	reminderID, ok := pathUUID(w, r, "reminderId")
	if !ok {
		return
	}

	var req dtos.ReminderRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}

	reminder, err := c.reminderService.Update(r.Context(), user.ID, reminderID, req.DaysBefore.Int())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, reminder)
}

// DELETE /reminders/{reminderId}
func (c *ReminderController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	reminderID, ok := pathUUID(w, r, "reminderId")
	if !ok {
		return
	}

	if err := c.reminderService.Delete(r.Context(), user.ID, reminderID); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
