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

const (
	leaseDateLayout      = "2006-01-02"
	leaseInviteCodeChars = 10
)

type LeaseService struct {
	leaseRepo    repositories.LeaseRepository
	propertyRepo repositories.PropertyRepository
	tenantRepo   repositories.LeaseTenantRepository
}

func NewLeaseService(leaseRepo repositories.LeaseRepository, propertyRepo repositories.PropertyRepository, tenantRepo repositories.LeaseTenantRepository) *LeaseService {
	return &LeaseService{
		leaseRepo:    leaseRepo,
		propertyRepo: propertyRepo,
		tenantRepo:   tenantRepo,
	}
}

func (s *LeaseService) Create(ctx context.Context, landlordID uuid.UUID, req *dtos.CreateLeaseRequest) (*models.Lease, error) {
	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		return nil, utils.BadRequestError("Invalid property ID")
	}

	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NotFoundError("Property not found")
		}
		return nil, err
	}
	if property.LandlordID != landlordID {
		return nil, utils.ForbiddenError("You do not own this property")
	}

	start, end, err := parseLeaseDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	lease := &models.Lease{
		ID:          uuid.New(),
		PropertyID:  propertyID,
		StartDate:   start,
		EndDate:     end,
		TotalRent:   req.TotalRent,
		Description: utils.SanitizeText(req.Description),
		InviteCode:  utils.RandomString(leaseInviteCodeChars),
	}
	if err := s.leaseRepo.Create(ctx, lease); err != nil {
		return nil, err
	}

	lease.PropertyName = property.Name
	lease.PropertyAddress = property.Address
	return lease, nil
}

// Get returns the lease to its landlord or to one of its active
// tenants; everyone else sees not_found. The invite code is only
// included for the landlord.
func (s *LeaseService) Get(ctx context.Context, user *models.User, leaseID uuid.UUID) (*models.Lease, error) {
	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NotFoundError("Lease not found")
		}
		return nil, err
	}

	landlordID, err := s.leaseRepo.LandlordID(ctx, leaseID)
	if err != nil {
		return nil, err
	}

	if user.ID == landlordID {
		return lease, nil
	}

	isTenant, err := s.tenantRepo.IsTenant(ctx, leaseID, user.ID)
	if err != nil {
		return nil, err
	}
	if !isTenant {
		return nil, utils.NotFoundError("Lease not found")
	}

	lease.InviteCode = ""
	return lease, nil
}

func (s *LeaseService) List(ctx context.Context, user *models.User) ([]*models.Lease, error) {
	leases, err := s.leaseRepo.ListForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if user.UserType == models.UserTypeTenant {
		for _, l := range leases {
			l.InviteCode = ""
		}
	}
	return leases, nil
}

func (s *LeaseService) Update(ctx context.Context, landlordID, leaseID uuid.UUID, req *dtos.UpdateLeaseRequest) (*models.Lease, error) {
	lease, err := s.getOwned(ctx, landlordID, leaseID)
	if err != nil {
		return nil, err
	}

	start, end, err := parseLeaseDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	lease.StartDate = start
	lease.EndDate = end
	lease.TotalRent = req.TotalRent
	lease.Description = utils.SanitizeText(req.Description)

	if err := s.leaseRepo.Update(ctx, lease); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NotFoundError("Lease not found")
		}
		return nil, err
	}
	return lease, nil
}

func (s *LeaseService) UpdateDescription(ctx context.Context, landlordID, leaseID uuid.UUID, description string) error {
	if _, err := s.getOwned(ctx, landlordID, leaseID); err != nil {
		return err
	}
	err := s.leaseRepo.UpdateDescription(ctx, leaseID, utils.SanitizeText(description))
	if errors.Is(err, pgx.ErrNoRows) {
		return utils.NotFoundError("Lease not found")
	}
	return err
}

func (s *LeaseService) Delete(ctx context.Context, landlordID, leaseID uuid.UUID) error {
	if _, err := s.getOwned(ctx, landlordID, leaseID); err != nil {
		return err
	}
	err := s.leaseRepo.SoftDelete(ctx, leaseID)
	if errors.Is(err, pgx.ErrNoRows) {
		return utils.NotFoundError("Lease not found")
	}
	return err
}

// getOwned loads a lease and checks the caller is the owning landlord.
func (s *LeaseService) getOwned(ctx context.Context, landlordID, leaseID uuid.UUID) (*models.Lease, error) {
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

func parseLeaseDates(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := parseDate(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, utils.BadRequestError("Invalid start date")
	}
	end, err := parseDate(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, utils.BadRequestError("Invalid end date")
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, utils.BadRequestError("End date must be after start date")
	}
	return start, end, nil
}

// parseDate accepts a bare date or a full RFC3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(leaseDateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
