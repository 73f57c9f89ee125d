package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/avibn/lanten-sub001/internal/dtos"
	"github.com/avibn/lanten-sub001/internal/services"
	"github.com/avibn/lanten-sub001/internal/utils"
)

type PaymentController struct {
	paymentService *services.PaymentService
	validate       *validator.Validate
}

func NewPaymentController(paymentService *services.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
		validate:       newValidator(),
	}
}

// POST /leases/{leaseId}/payments
func (c *PaymentController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	leaseID, ok := pathUUID(w, r, "leaseId")
	if !ok {
		return
	}

	var req dtos.PaymentRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}

	payment, err := c.paymentService.Create(r.Context(), user.ID, leaseID, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, payment)
}

// GET /leases/{leaseId}/payments
func (c *PaymentController) ListHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	leaseID, ok := pathUUID(w, r, "leaseId")
	if !ok {
		return
	}

	payments, err := c.paymentService.List(r.Context(), user, leaseID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, payments)
}

// GET /payments/{paymentId}
func (c *PaymentController) GetHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	paymentID, ok := pathUUID(w, r, "paymentId")
	if !ok {
		return
	}

	payment, err := c.paymentService.Get(r.Context(), user, paymentID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, payment)
}

// PUT /payments/{paymentId}
func (c *PaymentController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	paymentID, ok := pathUUID(w, r, "paymentId")
	if !ok {
		return
	}

	var req dtos.PaymentRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}

	payment, err := c.paymentService.Update(r.Context(), user.ID, paymentID, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, payment)
}

// DELETE /payments/{paymentId}
func (c *PaymentController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	paymentID, ok := pathUUID(w, r, "paymentId")
	if !ok {
		return
	}

	if err := c.paymentService.Delete(r.Context(), user.ID, paymentID); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
