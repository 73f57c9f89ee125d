package dtos

type SendMessageRequest struct {
	Message string `json:"message" validate:"required,min=1,max=250"`
}
