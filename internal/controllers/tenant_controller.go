package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/avibn/lanten-sub001/internal/dtos"
	"github.com/avibn/lanten-sub001/internal/services"
	"github.com/avibn/lanten-sub001/internal/utils"
)

type TenantController struct {
	tenantService *services.TenantService
	validate      *validator.Validate
}

func NewTenantController(tenantService *services.TenantService) *TenantController {
	return &TenantController{
		tenantService: tenantService,
		validate:      newValidator(),
	}
}

// POST /leases/{leaseId}/tenants/invites
func (c *TenantController) InviteHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	leaseID, ok := pathUUID(w, r, "leaseId")
	if !ok {
		return
	}

	var req dtos.InviteTenantRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}

	if err := c.tenantService.Invite(r.Context(), user.ID, leaseID, req.Email); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /leases/join
func (c *TenantController) JoinHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req dtos.JoinLeaseRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}

	lease, err := c.tenantService.Join(r.Context(), user, req.Code)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, lease)
}

// GET /leases/{leaseId}/tenants
func (c *TenantController) ListHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	leaseID, ok := pathUUID(w, r, "leaseId")
	if !ok {
		return
	}

	tenants, err := c.tenantService.List(r.Context(), user, leaseID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tenants)
}

// POST /leases/{leaseId}/tenants/leave
func (c *TenantController) LeaveHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	leaseID, ok := pathUUID(w, r, "leaseId")
	if !ok {
		return
	}

	if err := c.tenantService.Leave(r.Context(), user.ID, leaseID); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /leases/{leaseId}/tenants/remove
func (c *TenantController) RemoveHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	leaseID, ok := pathUUID(w, r, "leaseId")
	if !ok {
		return
	}

	var req dtos.RemoveTenantRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	tenantID, err := uuid.Parse(req.TenantID)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid tenant ID", nil, err)
		return
	}

	if err := c.tenantService.Remove(r.Context(), user.ID, leaseID, tenantID); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
