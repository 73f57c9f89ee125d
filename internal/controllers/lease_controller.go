package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/avibn/lanten-sub001/internal/dtos"
	"github.com/avibn/lanten-sub001/internal/services"
	"github.com/avibn/lanten-sub001/internal/utils"
)

type LeaseController struct {
	leaseService *services.LeaseService
	validate     *validator.Validate
}

func NewLeaseController(leaseService *services.LeaseService) *LeaseController {
	return &LeaseController{
		leaseService: leaseService,
		validate:     newValidator(),
	}
}

// POST /leases
func (c *LeaseController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req dtos.CreateLeaseRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}

	lease, err := c.leaseService.Create(r.Context(), user.ID, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, lease)
}

// GET /leases
func (c *LeaseController) ListHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	leases, err := c.leaseService.List(r.Context(), user)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, leases)
}

// GET /leases/{leaseId}
func (c *LeaseController) GetHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	leaseID, ok := pathUUID(w, r, "leaseId")
	if !ok {
		return
	}

	lease, err := c.leaseService.Get(r.Context(), user, leaseID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, lease)
}

// PUT /leases/{leaseId}
func (c *LeaseController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	leaseID, ok := pathUUID(w, r, "leaseId")
	if !ok {
		return
	}

	var req dtos.UpdateLeaseRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}

	lease, err := c.leaseService.Update(r.Context(), user.ID, leaseID, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, lease)
}

// PUT /leases/{leaseId}/description
func (c *LeaseController) UpdateDescriptionHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	leaseID, ok := pathUUID(w, r, "leaseId")
	if !ok {
		return
	}

	var req dtos.UpdateLeaseDescriptionRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}

	if err := c.leaseService.UpdateDescription(r.Context(), user.ID, leaseID, req.Description); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /leases/{leaseId}
func (c *LeaseController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	leaseID, ok := pathUUID(w, r, "leaseId")
	if !ok {
		return
	}

	if err := c.leaseService.Delete(r.Context(), user.ID, leaseID); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
