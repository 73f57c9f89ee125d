package controllers

import (
	"encoding/json"
	"math"
	"net/http"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/avibn/lanten-sub001/internal/middleware"
	"github.com/avibn/lanten-sub001/internal/models"
	"github.com/avibn/lanten-sub001/internal/utils"
)

const maxCurrencyAmount = 1_000_000

// newValidator builds the validator shared by the controllers, with
// the domain tags registered.
func newValidator() *validator.Validate {
	v := validator.New()

	// currency: non-negative, capped, at most two decimal places.
	_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		amount := fl.Field().Float()
		if amount < 0 || amount > maxCurrencyAmount {
			return false
		}
		cents := amount * 100
		return math.Abs(cents-math.Round(cents)) < 1e-6
	})

	// password: length plus at least one uppercase letter and one digit.
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		pw := fl.Field().String()
		if len(pw) < 8 || len(pw) > 100 {
			return false
		}
		var hasUpper, hasDigit bool
		for _, r := range pw {
			switch {
			case unicode.IsUpper(r):
				hasUpper = true
			case unicode.IsDigit(r):
				hasDigit = true
			}
		}
		return hasUpper && hasDigit
	})

	return v
}

// decodeAndValidate binds the JSON body into req and runs the
// validator, writing the error response itself. Returns false when the
// request has already been answered.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.Validate, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request payload", nil, err)
		return false
	}
	return validateStruct(w, v, req)
}

func validateStruct(w http.ResponseWriter, v *validator.Validate, req any) bool {
	if err := v.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed",
			utils.ValidationFieldErrors(err), err,
		)
		return false
	}
	return true
}

// pathUUID extracts a UUID path variable, answering 400 on garbage.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid "+name, nil, err)
		return uuid.Nil, false
	}
	return id, true
}

// currentUser pulls the authenticated user off the context. Routes are
// wrapped in AuthMiddleware, so a miss here is a wiring bug.
func currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing user in context", nil)
		return nil, false
	}
	return user, true
}
