package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/avibn/lanten-sub001/internal/dtos"
	"github.com/avibn/lanten-sub001/internal/services"
	"github.com/avibn/lanten-sub001/internal/utils"
)

type MessageController struct {
	messageService *services.MessageService
	validate       *validator.Validate
}

func NewMessageController(messageService *services.MessageService) *MessageController {
	return &MessageController{
		messageService: messageService,
		validate:       newValidator(),
	}
}

// POST /users/{userId}/messages
func (c *MessageController) SendHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	recipientID, ok := pathUUID(w, r, "userId")
	if !ok {
		return
	}

	var req dtos.SendMessageRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}

	message, err := c.messageService.Send(r.Context(), user, recipientID, req.Message)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, message)
}

// GET /users/{userId}/messages?from=<messageId>&max=<n>
func (c *MessageController) ConversationHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	otherID, ok := pathUUID(w, r, "userId")
	if !ok {
		return
	}

	var from *uuid.UUID
	if raw := r.URL.Query().Get("from"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid from cursor", nil, err)
			return
		}
		from = &id
	}

	max := services.DefaultMessagePageSize
	if raw := r.URL.Query().Get("max"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > services.MaxMessagePageSize {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "max must be between 1 and 100", nil)
			return
		}
		max = n
	}

	messages, err := c.messageService.Conversation(r.Context(), user, otherID, from, max)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, messages)
}

// GET /messages/channels
func (c *MessageController) GetChannelsHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	channels, err := c.messageService.Channels(r.Context(), user.ID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	// Clients key their conversation cache on this tag.
	w.Header().Set("Cache-Tag", "MessageChannels")
	utils.RespondWithJSON(w, http.StatusOK, channels)
}

// DELETE /messages/{messageId}
func (c *MessageController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	messageID, ok := pathUUID(w, r, "messageId")
	if !ok {
		return
	}

	if err := c.messageService.Delete(r.Context(), user.ID, messageID); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
