package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/avibn/lanten-sub001/internal/dtos"
	"github.com/avibn/lanten-sub001/internal/models"
	"github.com/avibn/lanten-sub001/internal/repositories"
	"github.com/avibn/lanten-sub001/internal/utils"
)

type PaymentService struct {
	paymentRepo  repositories.PaymentRepository
	reminderRepo repositories.ReminderRepository
	leaseRepo    repositories.LeaseRepository
	tenantRepo   repositories.LeaseTenantRepository
}

func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	reminderRepo repositories.ReminderRepository,
	leaseRepo repositories.LeaseRepository,
	tenantRepo repositories.LeaseTenantRepository,
) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		reminderRepo: reminderRepo,
		leaseRepo:    leaseRepo,
		tenantRepo:   tenantRepo,
	}
}

func (s *PaymentService) Create(ctx context.Context, landlordID, leaseID uuid.UUID, req *dtos.PaymentRequest) (*models.Payment, error) {
	if err := s.requireLandlord(ctx, landlordID, leaseID); err != nil {
		return nil, err
	}

	paymentDate, err := parseDate(req.PaymentDate)
	if err != nil {
		return nil, utils.BadRequestError("Invalid payment date")
	}

	payment := &models.Payment{
		ID:                uuid.New(),
		LeaseID:           leaseID,
		Name:              utils.SanitizeText(req.Name),
		Amount:            req.Amount,
		Type:              models.PaymentType(req.Type),
		PaymentDate:       paymentDate,
		RecurringInterval: models.RecurringInterval(req.RecurringInterval),
	}
	if req.Description != nil {
		desc := utils.SanitizeText(*req.Description)
		payment.Description = &desc
	}

	// Reminder schedule entries may arrive with the payment. Duplicate
	// offsets within the request collapse silently.
	seen := make(map[int]bool)
	var reminders []*models.Reminder
	for _, days := range req.Reminders {
		d := days.Int()
		if seen[d] {
			continue
		}
		seen[d] = true
		reminders = append(reminders, &models.Reminder{
			ID:         uuid.New(),
			PaymentID:  payment.ID,
			DaysBefore: d,
		})
	}

	if err := s.paymentRepo.CreateWithReminders(ctx, payment, reminders); err != nil {
		return nil, err
	}

	payment.Reminders = reminders
	return payment, nil
}

func (s *PaymentService) Get(ctx context.Context, user *models.User, paymentID uuid.UUID) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NotFoundError("Payment not found")
		}
		return nil, err
	}
	if err := s.requireMember(ctx, user, payment.LeaseID); err != nil {
		return nil, err
	}

	s.rollForward(payment)

	payment.Reminders, err = s.reminderRepo.ListByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) List(ctx context.Context, user *models.User, leaseID uuid.UUID) ([]*models.Payment, error) {
	if err := s.requireMember(ctx, user, leaseID); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListByLeaseID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		s.rollForward(p)
	}
	return payments, nil
}

func (s *PaymentService) Update(ctx context.Context, landlordID, paymentID uuid.UUID, req *dtos.PaymentRequest) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NotFoundError("Payment not found")
		}
		return nil, err
	}
	if err := s.requireLandlord(ctx, landlordID, payment.LeaseID); err != nil {
		return nil, err
	}

	paymentDate, err := parseDate(req.PaymentDate)
	if err != nil {
		return nil, utils.BadRequestError("Invalid payment date")
	}

	payment.Name = utils.SanitizeText(req.Name)
	payment.Amount = req.Amount
	payment.Type = models.PaymentType(req.Type)
	payment.PaymentDate = paymentDate
	payment.RecurringInterval = models.RecurringInterval(req.RecurringInterval)
	payment.Description = nil
	if req.Description != nil {
		desc := utils.SanitizeText(*req.Description)
		payment.Description = &desc
	}

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NotFoundError("Payment not found")
		}
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) Delete(ctx context.Context, landlordID, paymentID uuid.UUID) error {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.NotFoundError("Payment not found")
		}
		return err
	}
	if err := s.requireLandlord(ctx, landlordID, payment.LeaseID); err != nil {
		return err
	}

	err = s.paymentRepo.SoftDelete(ctx, paymentID)
	if errors.Is(err, pgx.ErrNoRows) {
		return utils.NotFoundError("Payment not found")
	}
	return err
}

// rollForward advances a recurring payment date past today so the
// displayed date is always the next occurrence. The stored date is
// untouched.
func (s *PaymentService) rollForward(p *models.Payment) {
	if p.RecurringInterval == models.IntervalNone {
		return
	}
	now := time.Now()
	for p.PaymentDate.Before(now) {
		next := utils.AddIntervalToDate(p.PaymentDate, string(p.RecurringInterval))
		if !next.After(p.PaymentDate) {
			return
		}
		p.PaymentDate = next
	}
}

func (s *PaymentService) requireLandlord(ctx context.Context, landlordID, leaseID uuid.UUID) error {
	owner, err := s.leaseRepo.LandlordID(ctx, leaseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.NotFoundError("Lease not found")
		}
		return err
	}
	if owner != landlordID {
		return utils.ForbiddenError("You do not manage this lease")
	}
	return nil
}

func (s *PaymentService) requireMember(ctx context.Context, user *models.User, leaseID uuid.UUID) error {
	owner, err := s.leaseRepo.LandlordID(ctx, leaseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.NotFoundError("Lease not found")
		}
		return err
	}
	if user.ID == owner {
		return nil
	}
	isTenant, err := s.tenantRepo.IsTenant(ctx, leaseID, user.ID)
	if err != nil {
		return err
	}
	if !isTenant {
		return utils.NotFoundError("Lease not found")
	}
	return nil
}
