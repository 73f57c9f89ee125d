package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/avibn/lanten-sub001/internal/dtos"
	"github.com/avibn/lanten-sub001/internal/services"
	"github.com/avibn/lanten-sub001/internal/utils"
)

type AnnouncementController struct {
	announcementService *services.AnnouncementService
	validate            *validator.Validate
}

func NewAnnouncementController(announcementService *services.AnnouncementService) *AnnouncementController {
	return &AnnouncementController{
		announcementService: announcementService,
		validate:            newValidator(),
	}
}

// POST /leases/{leaseId}/announcements
func (c *AnnouncementController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	leaseID, ok := pathUUID(w, r, "leaseId")
	if !ok {
		return
	}

	var req dtos.AnnouncementRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}

	announcement, err := c.announcementService.Create(r.Context(), user.ID, leaseID, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, announcement)
}

// GET /leases/{leaseId}/announcements
func (c *AnnouncementController) ListHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	leaseID, ok := pathUUID(w, r, "leaseId")
	if !ok {
		return
	}

	announcements, err := c.announcementService.List(r.Context(), user, leaseID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, announcements)
}

// GET /announcements/{announcementId}
func (c *AnnouncementController) GetHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	announcementID, ok := pathUUID(w, r, "announcementId")
	if !ok {
		return
	}

	announcement, err := c.announcementService.Get(r.Context(), user, announcementID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, announcement)
}

// PUT /announcements/{announcementId}
func (c *AnnouncementController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	announcementID, ok := pathUUID(w, r, "announcementId")
	if !ok {
		return
	}

	var req dtos.AnnouncementRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}

	announcement, err := c.announcementService.Update(r.Context(), user.ID, announcementID, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, announcement)
}

// DELETE /announcements/{announcementId}
func (c *AnnouncementController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	announcementID, ok := pathUUID(w, r, "announcementId")
	if !ok {
		return
	}

	if err := c.announcementService.Delete(r.Context(), user.ID, announcementID); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
