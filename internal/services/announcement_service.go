package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/avibn/lanten-sub001/internal/dtos"
	"github.com/avibn/lanten-sub001/internal/models"
	"github.com/avibn/lanten-sub001/internal/repositories"
	"github.com/avibn/lanten-sub001/internal/utils"
)

type AnnouncementService struct {
	announcementRepo repositories.AnnouncementRepository
	leaseRepo        repositories.LeaseRepository
	tenantRepo       repositories.LeaseTenantRepository
	mailer           Mailer
}

func NewAnnouncementService(
	announcementRepo repositories.AnnouncementRepository,
	leaseRepo repositories.LeaseRepository,
	tenantRepo repositories.LeaseTenantRepository,
	mailer Mailer,
) *AnnouncementService {
	return &AnnouncementService{
		announcementRepo: announcementRepo,
		leaseRepo:        leaseRepo,
		tenantRepo:       tenantRepo,
		mailer:           mailer,
	}
}

// Create stores the announcement and emails every active tenant on the
// lease. Email failures are logged and never fail the create.
func (s *AnnouncementService) Create(ctx context.Context, landlordID, leaseID uuid.UUID, req *dtos.AnnouncementRequest) (*models.Announcement, error) {
	lease, err := s.requireLandlord(ctx, landlordID, leaseID)
	if err != nil {
		return nil, err
	}

	announcement := &models.Announcement{
		ID:      uuid.New(),
		LeaseID: leaseID,
		Title:   utils.SanitizeText(req.Title),
		Message: utils.SanitizeText(req.Message),
	}
	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		return nil, err
	}

	s.broadcast(ctx, lease, announcement)
	return announcement, nil
}

func (s *AnnouncementService) Get(ctx context.Context, user *models.User, announcementID uuid.UUID) (*models.Announcement, error) {
	announcement, err := s.announcementRepo.GetByID(ctx, announcementID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NotFoundError("Announcement not found")
		}
		return nil, err
	}
	if err := s.requireMember(ctx, user, announcement.LeaseID); err != nil {
		return nil, err
	}
	return announcement, nil
}

func (s *AnnouncementService) List(ctx context.Context, user *models.User, leaseID uuid.UUID) ([]*models.Announcement, error) {
	if err := s.requireMember(ctx, user, leaseID); err != nil {
		return nil, err
	}
	return s.announcementRepo.ListByLeaseID(ctx, leaseID)
}

func (s *AnnouncementService) Update(ctx context.Context, landlordID, announcementID uuid.UUID, req *dtos.AnnouncementRequest) (*models.Announcement, error) {
	announcement, err := s.announcementRepo.GetByID(ctx, announcementID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NotFoundError("Announcement not found")
		}
		return nil, err
	}
	if _, err := s.requireLandlord(ctx, landlordID, announcement.LeaseID); err != nil {
		return nil, err
	}

	announcement.Title = utils.SanitizeText(req.Title)
	announcement.Message = utils.SanitizeText(req.Message)

	if err := s.announcementRepo.Update(ctx, announcement); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NotFoundError("Announcement not found")
		}
		return nil, err
	}
	return announcement, nil
}

func (s *AnnouncementService) Delete(ctx context.Context, landlordID, announcementID uuid.UUID) error {
	announcement, err := s.announcementRepo.GetByID(ctx, announcementID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.NotFoundError("Announcement not found")
		}
		return err
	}
	if _, err := s.requireLandlord(ctx, landlordID, announcement.LeaseID); err != nil {
		return err
	}

	err = s.announcementRepo.SoftDelete(ctx, announcementID)
	if errors.Is(err, pgx.ErrNoRows) {
		return utils.NotFoundError("Announcement not found")
	}
	return err
}

func (s *AnnouncementService) requireLandlord(ctx context.Context, landlordID, leaseID uuid.UUID) (*models.Lease, error) {
	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NotFoundError("Lease not found")
		}
		return nil, err
	}
	owner, err := s.leaseRepo.LandlordID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if owner != landlordID {
		return nil, utils.ForbiddenError("You do not manage this lease")
	}
	return lease, nil
}

func (s *AnnouncementService) requireMember(ctx context.Context, user *models.User, leaseID uuid.UUID) error {
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

func (s *AnnouncementService) broadcast(ctx context.Context, lease *models.Lease, a *models.Announcement) {
	memberships, err := s.tenantRepo.ListByLeaseID(ctx, lease.ID)
	if err != nil {
		utils.Logger.WithError(err).Errorf("Failed to list tenants for announcement %s", a.ID)
		return
	}

	subject := fmt.Sprintf("New announcement: %s", a.Title)
	plain := fmt.Sprintf("A new announcement was posted for %s.\n\n%s\n\n%s", lease.PropertyAddress, a.Title, a.Message)
	html := fmt.Sprintf(
		`<p>A new announcement was posted for <strong>%s</strong>.</p><h3>%s</h3><p>%s</p>`,
		lease.PropertyAddress, a.Title, a.Message,
	)

	for _, m := range memberships {
		if m.Tenant == nil || m.Tenant.Email == "" {
			continue
		}
		if err := s.mailer.Send(ctx, m.Tenant.Name, m.Tenant.Email, subject, plain, html); err != nil {
			utils.Logger.WithError(err).Warnf("Failed to email announcement %s to %s", a.ID, m.Tenant.Email)
		}
	}
}
