package dtos

// DocumentNameRequest is used for the multipart "name" field on upload
// and for the JSON rename body.
type DocumentNameRequest struct {
	Name string `json:"name" validate:"required,min=1,max=30"`
}
