package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/avibn/lanten-sub001/internal/dtos"
	"github.com/avibn/lanten-sub001/internal/services"
	"github.com/avibn/lanten-sub001/internal/utils"
)

// maxDocumentSize caps lease document uploads at 10MB.
const maxDocumentSize = 10 << 20

type DocumentController struct {
	documentService *services.DocumentService
	validate        *validator.Validate
}

func NewDocumentController(documentService *services.DocumentService) *DocumentController {
	return &DocumentController{
		documentService: documentService,
		validate:        newValidator(),
	}
}

// POST /leases/{leaseId}/documents
func (c *DocumentController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	leaseID, ok := pathUUID(w, r, "leaseId")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxDocumentSize+1<<20)
	if err := r.ParseMultipartForm(maxDocumentSize); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid multipart payload", nil, err)
		return
	}

	req := dtos.DocumentNameRequest{Name: r.FormValue("name")}
	if !validateStruct(w, c.validate, &req) {
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "A document file is required", nil, err)
		return
	}
	if header.Size == 0 {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "The document file cannot be empty", nil)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	doc, err := c.documentService.Create(r.Context(), user, leaseID, req.Name, &services.DocumentUpload{
		FileName:    header.Filename,
		ContentType: contentType,
		Body:        file,
	})
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, doc)
}

// GET /leases/{leaseId}/documents
func (c *DocumentController) ListHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	leaseID, ok := pathUUID(w, r, "leaseId")
	if !ok {
		return
	}

	documents, err := c.documentService.List(r.Context(), user, leaseID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, documents)
}

// GET /documents/{documentId}
func (c *DocumentController) GetHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	documentID, ok := pathUUID(w, r, "documentId")
	if !ok {
		return
	}

	doc, err := c.documentService.Get(r.Context(), user, documentID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, doc)
}

// PUT /documents/{documentId}
func (c *DocumentController) RenameHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	documentID, ok := pathUUID(w, r, "documentId")
	if !ok {
		return
	}

	var req dtos.DocumentNameRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}

	doc, err := c.documentService.Rename(r.Context(), user, documentID, req.Name)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, doc)
}

// DELETE /documents/{documentId}
func (c *DocumentController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	documentID, ok := pathUUID(w, r, "documentId")
	if !ok {
		return
	}

	if err := c.documentService.Delete(r.Context(), user, documentID); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
