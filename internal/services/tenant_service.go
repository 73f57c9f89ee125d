package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/avibn/lanten-sub001/internal/models"
	"github.com/avibn/lanten-sub001/internal/repositories"
	"github.com/avibn/lanten-sub001/internal/utils"
)

type TenantService struct {
	leaseRepo  repositories.LeaseRepository
	tenantRepo repositories.LeaseTenantRepository
	mailer     Mailer

	inviteSigningKey []byte
	inviteTTL        time.Duration
	clientURL        string
}

func NewTenantService(
	leaseRepo repositories.LeaseRepository,
	tenantRepo repositories.LeaseTenantRepository,
	mailer Mailer,
	inviteSigningKey []byte,
	inviteTTL time.Duration,
	clientURL string,
) *TenantService {
	return &TenantService{
		leaseRepo:        leaseRepo,
		tenantRepo:       tenantRepo,
		mailer:           mailer,
		inviteSigningKey: inviteSigningKey,
		inviteTTL:        inviteTTL,
		clientURL:        clientURL,
	}
}

type inviteClaims struct {
	LeaseID string `json:"leaseId"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

// Invite emails a signed, expiring join code to a prospective tenant.
// The code is bound to both the lease and the invited address.
func (s *TenantService) Invite(ctx context.Context, landlordID, leaseID uuid.UUID, email string) error {
	lease, err := s.getManagedLease(ctx, landlordID, leaseID)
	if err != nil {
		return err
	}

	already, err := s.tenantRepo.HasTenantWithEmail(ctx, leaseID, email)
	if err != nil {
		return err
	}
	if already {
		return utils.ConflictError("This person is already a tenant on the lease")
	}

	token, err := s.signInvite(leaseID, email)
	if err != nil {
		return err
	}

	subject := "You have been invited to join a lease"
	plain := fmt.Sprintf(
		"You have been invited to join the lease at %s.\n\nUse this code to join: %s\n\nThe code expires in %d days.",
		lease.PropertyAddress, token, int(s.inviteTTL.Hours()/24),
	)
	html := fmt.Sprintf(
		`<p>You have been invited to join the lease at <strong>%s</strong>.</p>
<p>Join here: <a href="%s/leases/join?code=%s">accept invite</a>, or enter the code manually:</p>
<pre>%s</pre>
<p>The code expires in %d days.</p>`,
		lease.PropertyAddress, s.clientURL, token, token, int(s.inviteTTL.Hours()/24),
	)

	return s.mailer.Send(ctx, "", email, subject, plain, html)
}

// Join adds the caller to a lease. The code is either a signed invite
// token (checked against the caller's email) or the lease's static
// invite code.
func (s *TenantService) Join(ctx context.Context, tenant *models.User, code string) (*models.Lease, error) {
	lease, err := s.resolveInvite(ctx, tenant, code)
	if err != nil {
		return nil, err
	}

	isTenant, err := s.tenantRepo.IsTenant(ctx, lease.ID, tenant.ID)
	if err != nil {
		return nil, err
	}
	if isTenant {
		return nil, utils.ConflictError("You are already a tenant on this lease")
	}

	membership := &models.LeaseTenant{
		ID:       uuid.New(),
		LeaseID:  lease.ID,
		TenantID: tenant.ID,
	}
	if err := s.tenantRepo.Add(ctx, membership); err != nil {
		return nil, err
	}

	lease.InviteCode = ""
	return lease, nil
}

func (s *TenantService) List(ctx context.Context, user *models.User, leaseID uuid.UUID) ([]*models.LeaseTenant, error) {
	landlordID, err := s.leaseRepo.LandlordID(ctx, leaseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NotFoundError("Lease not found")
		}
		return nil, err
	}

	if user.ID != landlordID {
		isTenant, err := s.tenantRepo.IsTenant(ctx, leaseID, user.ID)
		if err != nil {
			return nil, err
		}
		if !isTenant {
			return nil, utils.NotFoundError("Lease not found")
		}
	}

	return s.tenantRepo.ListByLeaseID(ctx, leaseID)
}

// Leave removes the caller's own membership.
func (s *TenantService) Leave(ctx context.Context, tenantID, leaseID uuid.UUID) error {
	err := s.tenantRepo.Leave(ctx, leaseID, tenantID)
	if errors.Is(err, pgx.ErrNoRows) {
		return utils.NotFoundError("You are not a tenant on this lease")
	}
	return err
}

// Remove is the landlord removing a tenant from their lease.
func (s *TenantService) Remove(ctx context.Context, landlordID, leaseID, tenantID uuid.UUID) error {
	if _, err := s.getManagedLease(ctx, landlordID, leaseID); err != nil {
		return err
	}

	memberships, err := s.tenantRepo.ListByLeaseID(ctx, leaseID)
	if err != nil {
		return err
	}
	for _, m := range memberships {
		if m.TenantID == tenantID {
			if err := s.tenantRepo.Remove(ctx, m.ID); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return utils.NotFoundError("Tenant is not on this lease")
				}
				return err
			}
			return nil
		}
	}
	return utils.NotFoundError("Tenant is not on this lease")
}

func (s *TenantService) getManagedLease(ctx context.Context, landlordID, leaseID uuid.UUID) (*models.Lease, error) {
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

func (s *TenantService) signInvite(leaseID uuid.UUID, email string) (string, error) {
	now := time.Now()
	claims := inviteClaims{
		LeaseID: leaseID.String(),
		Email:   email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.inviteTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.inviteSigningKey)
}

func (s *TenantService) resolveInvite(ctx context.Context, tenant *models.User, code string) (*models.Lease, error) {
	var claims inviteClaims
	token, err := jwt.ParseWithClaims(code, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.inviteSigningKey, nil
	})

	if err == nil && token.Valid {
		if claims.Email != tenant.Email {
			return nil, utils.ForbiddenError("This invite was issued to a different email address")
		}
		leaseID, parseErr := uuid.Parse(claims.LeaseID)
		if parseErr != nil {
			return nil, utils.BadRequestError("Invalid invite code")
		}
		lease, getErr := s.leaseRepo.GetByID(ctx, leaseID)
		if getErr != nil {
			if errors.Is(getErr, pgx.ErrNoRows) {
				return nil, utils.NotFoundError("Lease not found")
			}
			return nil, getErr
		}
		return lease, nil
	}
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, utils.BadRequestError("Invite code has expired")
	}

	// Not a signed invite: fall back to the lease's static code.
	lease, err := s.leaseRepo.GetByInviteCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NotFoundError("Invalid invite code")
		}
		return nil, err
	}
	return lease, nil
}
