package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/avibn/lanten-sub001/internal/models"
	"github.com/avibn/lanten-sub001/internal/repositories"
	"github.com/avibn/lanten-sub001/internal/utils"
)

const (
	DefaultMessagePageSize = 20
	MaxMessagePageSize     = 100
)

type MessageService struct {
	messageRepo repositories.MessageRepository
	userRepo    repositories.UserRepository
	tenantRepo  repositories.LeaseTenantRepository
}

func NewMessageService(
	messageRepo repositories.MessageRepository,
	userRepo repositories.UserRepository,
	tenantRepo repositories.LeaseTenantRepository,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		tenantRepo:  tenantRepo,
	}
}

// Send delivers a message from the authenticated user to another.
// Delivery is restricted to the landlord/tenant relationship: a
// landlord may message tenants on their leases, a tenant their own
// landlords, and nobody themselves.
func (s *MessageService) Send(ctx context.Context, sender *models.User, recipientID uuid.UUID, text string) (*models.Message, error) {
	if sender.ID == recipientID {
		return nil, utils.BadRequestError("You cannot message yourself")
	}

	recipient, err := s.userRepo.GetByID(ctx, recipientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NotFoundError("Recipient not found")
		}
		return nil, err
	}

	if err := s.checkRelationship(ctx, sender, recipient); err != nil {
		return nil, err
	}

	message := &models.Message{
		ID:          uuid.New(),
		Message:     utils.SanitizeText(text),
		AuthorID:    sender.ID,
		RecipientID: recipient.ID,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	message.Author = sender.Projection()
	message.Recipient = recipient.Projection()
	return message, nil
}

// Conversation pages through the dialogue between the caller and the
// other user, oldest first, resuming after the optional cursor.
func (s *MessageService) Conversation(ctx context.Context, user *models.User, otherID uuid.UUID, from *uuid.UUID, max int) ([]*models.Message, error) {
	if max <= 0 {
		max = DefaultMessagePageSize
	}
	if max > MaxMessagePageSize {
		max = MaxMessagePageSize
	}

	other, err := s.userRepo.GetByID(ctx, otherID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NotFoundError("User not found")
		}
		return nil, err
	}
	if err := s.checkRelationship(ctx, user, other); err != nil {
		return nil, err
	}

	return s.messageRepo.ListBetween(ctx, user.ID, otherID, from, max)
}

func (s *MessageService) Channels(ctx context.Context, userID uuid.UUID) ([]*models.MessageChannel, error) {
	return s.messageRepo.Channels(ctx, userID)
}

// Delete soft-deletes the caller's own message. A repeat delete is a
// 404: the row is already invisible.
func (s *MessageService) Delete(ctx context.Context, userID, messageID uuid.UUID) error {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.NotFoundError("Message not found")
		}
		return err
	}
	if message.AuthorID != userID {
		return utils.ForbiddenError("You can only delete your own messages")
	}

	err = s.messageRepo.SoftDelete(ctx, messageID)
	if errors.Is(err, pgx.ErrNoRows) {
		return utils.NotFoundError("Message not found")
	}
	return err
}

func (s *MessageService) checkRelationship(ctx context.Context, a, b *models.User) error {
	var landlord, tenant *models.User
	switch {
	case a.UserType == models.UserTypeLandlord && b.UserType == models.UserTypeTenant:
		landlord, tenant = a, b
	case a.UserType == models.UserTypeTenant && b.UserType == models.UserTypeLandlord:
		landlord, tenant = b, a
	default:
		return utils.ForbiddenError("You can only message your landlord or your tenants")
	}

	related, err := s.tenantRepo.IsLandlordTenantPair(ctx, landlord.ID, tenant.ID)
	if err != nil {
		return err
	}
	if !related {
		return utils.ForbiddenError("You can only message your landlord or your tenants")
	}
	return nil
}
