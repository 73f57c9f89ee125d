package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/avibn/lanten-sub001/internal/dtos"
	"github.com/avibn/lanten-sub001/internal/services"
	"github.com/avibn/lanten-sub001/internal/utils"
)

// maxImageSize caps property image uploads at 5MB.
const maxImageSize = 5 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

type PropertyController struct {
	propertyService *services.PropertyService
	validate        *validator.Validate
}

func NewPropertyController(propertyService *services.PropertyService) *PropertyController {
	return &PropertyController{
		propertyService: propertyService,
		validate:        newValidator(),
	}
}

// POST /properties
func (c *PropertyController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	req, image, ok := c.bindForm(w, r)
	if !ok {
		return
	}

	property, err := c.propertyService.Create(r.Context(), user.ID, req, image)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, property)
}

// GET /properties
func (c *PropertyController) ListHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	properties, err := c.propertyService.List(r.Context(), user.ID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, properties)
}

// GET /properties/{propertyId}
func (c *PropertyController) GetHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	propertyID, ok := pathUUID(w, r, "propertyId")
	if !ok {
		return
	}

	property, err := c.propertyService.Get(r.Context(), user.ID, propertyID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, property)
}

// PUT /properties/{propertyId}
func (c *PropertyController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	propertyID, ok := pathUUID(w, r, "propertyId")
	if !ok {
		return
	}

	req, image, ok := c.bindForm(w, r)
	if !ok {
		return
	}

	property, err := c.propertyService.Update(r.Context(), user.ID, propertyID, req, image)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, property)
}

// DELETE /properties/{propertyId}
func (c *PropertyController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	propertyID, ok := pathUUID(w, r, "propertyId")
	if !ok {
		return
	}

	if err := c.propertyService.Delete(r.Context(), user.ID, propertyID); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// bindForm parses the multipart body: text fields plus an optional
// "image" part checked for size and content type.
func (c *PropertyController) bindForm(w http.ResponseWriter, r *http.Request) (*dtos.PropertyFormRequest, *services.PropertyImage, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize+1<<20)
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid multipart payload", nil, err)
		return nil, nil, false
	}

	req := &dtos.PropertyFormRequest{
		Name:        r.FormValue("name"),
		Address:     r.FormValue("address"),
		Description: r.FormValue("description"),
	}
	if !validateStruct(w, c.validate, req) {
		return nil, nil, false
	}

	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return req, nil, true
	}
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid image upload", nil, err)
		return nil, nil, false
	}

	if header.Size > maxImageSize {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Image must be 5MB or smaller", nil)
		return nil, nil, false
	}
	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Image must be a JPEG or PNG", nil)
		return nil, nil, false
	}

	return req, &services.PropertyImage{
		FileName:    header.Filename,
		ContentType: contentType,
		Body:        file,
	}, true
}
