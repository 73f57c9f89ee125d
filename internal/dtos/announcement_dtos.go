package dtos

type AnnouncementRequest struct {
	Title   string `json:"title" validate:"required,min=5,max=50"`
	Message string `json:"message" validate:"required,min=5,max=300"`
}
