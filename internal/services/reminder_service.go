package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/avibn/lanten-sub001/internal/models"
	"github.com/avibn/lanten-sub001/internal/repositories"
	"github.com/avibn/lanten-sub001/internal/utils"
)

type ReminderService struct {
	reminderRepo repositories.ReminderRepository
	paymentRepo  repositories.PaymentRepository
	leaseRepo    repositories.LeaseRepository
}

func NewReminderService(
	reminderRepo repositories.ReminderRepository,
	paymentRepo repositories.PaymentRepository,
	leaseRepo repositories.LeaseRepository,
) *ReminderService {
	return &ReminderService{
		reminderRepo: reminderRepo,
		paymentRepo:  paymentRepo,
		leaseRepo:    leaseRepo,
	}
}

// Create adds a reminder offset to a payment. A second reminder with
// the same offset is a validation failure, not a conflict: the client
// form treats it as a field error.
func (s *ReminderService) Create(ctx context.Context, landlordID, paymentID uuid.UUID, daysBefore int) (*models.Reminder, error) {
	if err := s.requirePaymentLandlord(ctx, landlordID, paymentID); err != nil {
		return nil, err
	}

	exists, err := s.reminderRepo.ExistsForPayment(ctx, paymentID, daysBefore)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, duplicateReminderError()
	}

	reminder := &models.Reminder{
		ID:         uuid.New(),
		PaymentID:  paymentID,
		DaysBefore: daysBefore,
	}
	if err := s.reminderRepo.Create(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *ReminderService) List(ctx context.Context, landlordID, paymentID uuid.UUID) ([]*models.Reminder, error) {
	if err := s.requirePaymentLandlord(ctx, landlordID, paymentID); err != nil {
		return nil, err
	}
	return s.reminderRepo.ListByPaymentID(ctx, paymentID)
}

func (s *ReminderService) Update(ctx context.Context, landlordID, reminderID uuid.UUID, daysBefore int) (*models.Reminder, error) {
	reminder, err := s.reminderRepo.GetByID(ctx, reminderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NotFoundError("Reminder not found")
		}
		return nil, err
	}
	if err := s.requirePaymentLandlord(ctx, landlordID, reminder.PaymentID); err != nil {
		return nil, err
	}

	if daysBefore != reminder.DaysBefore {
		exists, err := s.reminderRepo.ExistsForPayment(ctx, reminder.PaymentID, daysBefore)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, duplicateReminderError()
		}
	}

	reminder.DaysBefore = daysBefore
	if err := s.reminderRepo.Update(ctx, reminder); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NotFoundError("Reminder not found")
		}
		return nil, err
	}
	return reminder, nil
}

// Delete removes the reminder outright. Deleting twice is a 404.
func (s *ReminderService) Delete(ctx context.Context, landlordID, reminderID uuid.UUID) error {
	reminder, err := s.reminderRepo.GetByID(ctx, reminderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.NotFoundError("Reminder not found")
		}
		return err
	}
	if err := s.requirePaymentLandlord(ctx, landlordID, reminder.PaymentID); err != nil {
		return err
	}

	err = s.reminderRepo.Delete(ctx, reminderID)
	if errors.Is(err, pgx.ErrNoRows) {
		return utils.NotFoundError("Reminder not found")
	}
	return err
}

func (s *ReminderService) requirePaymentLandlord(ctx context.Context, landlordID, paymentID uuid.UUID) error {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.NotFoundError("Payment not found")
		}
		return err
	}
	owner, err := s.leaseRepo.LandlordID(ctx, payment.LeaseID)
	if err != nil {
		return err
	}
	if owner != landlordID {
		return utils.ForbiddenError("You do not manage this lease")
	}
	return nil
}

func duplicateReminderError() *utils.AppError {
	return utils.NewAppError(
		http.StatusBadRequest,
		utils.ErrCodeValidation,
		"A reminder with this offset already exists for the payment",
		nil,
	)
}
