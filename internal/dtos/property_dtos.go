package dtos

// PropertyFormRequest covers both create and update: the endpoints are
// multipart (optional image part), so the text fields arrive as form
// values and are validated here after binding.
type PropertyFormRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Address     string `json:"address" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=1000"`
}
